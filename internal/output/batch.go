package output

import (
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
)

// BatchResult is the outcome of one operation in a multi-item command or one
// line of a dispatch stream. Line is set for stream input, ID for items.
type BatchResult struct {
	Line  int    `json:"line,omitempty"`
	ID    string `json:"id,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Fail marks r failed with err, keeping the code and message of CLI errors.
func (r BatchResult) Fail(err error) BatchResult {
	r.OK = false
	r.Error = err.Error()
	r.Code = ""
	if ce, ok := clierr.As(err); ok {
		r.Error = ce.Message
		r.Code = ce.Code
	}
	return r
}

// Target names what r refers to: "line N" for stream input, else "item <short id>".
func (r BatchResult) Target() string {
	if r.Line > 0 {
		return fmt.Sprintf("line %d", r.Line)
	}
	return "item " + ShortID(r.ID)
}

// Failed counts the results that are not OK.
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}

// BatchSummary writes one error line per failure to errW and a completion
// count to w.
func BatchSummary(w, errW io.Writer, results []BatchResult) {
	for _, r := range results {
		if !r.OK {
			fmt.Fprintf(errW, "Error: %s: %s\n", r.Target(), r.Error)
		}
	}
	Messagef(w, "Completed %d/%d operations", len(results)-Failed(results), len(results))
}
