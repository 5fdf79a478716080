// Package output renders task lists, boards and command results as a table,
// JSON or one line per item.
package output

import (
	"os"
	"strings"
)

// Format selects how a command renders its result.
type Format int

const (
	// FormatAuto defers to $TASKLIST_OUTPUT, then the table.
	FormatAuto Format = iota
	// FormatJSON writes indented JSON for scripts.
	FormatJSON
	// FormatTable writes aligned columns.
	FormatTable
	// FormatCompact writes one "#N [x] title" line per item.
	FormatCompact
)

// EnvOutput names the environment variable that selects a default format.
const EnvOutput = "TASKLIST_OUTPUT"

var formatNames = map[string]Format{
	"json":    FormatJSON,
	"table":   FormatTable,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

// ParseFormat maps a format name, as accepted in $TASKLIST_OUTPUT, to a
// Format. Unknown names yield FormatAuto and false.
func ParseFormat(name string) (Format, bool) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTable:
		return "table"
	case FormatCompact:
		return "compact"
	}
	return "auto"
}

// Detect picks the format from the --json, --compact and --table flags in
// that order of precedence, then $TASKLIST_OUTPUT, then the table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvOutput)); ok {
		return f
	}
	return FormatTable
}
