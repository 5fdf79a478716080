package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON body written for a failed command.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes err as an ErrorResponse and returns the process exit code
// for it. Errors that are not CLI errors are reported as INTERNAL_ERROR.
func JSONError(w io.Writer, err error) int {
	ce, ok := clierr.As(err)
	if !ok {
		ce = clierr.New(clierr.InternalError, err.Error())
	}
	_ = JSON(w, ErrorResponse{Error: ce.Message, Code: ce.Code, Details: ce.Details})
	return ce.ExitCode()
}
