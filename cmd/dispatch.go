package cmd

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// maxActionLine bounds a single JSON action line read from stdin.
const maxActionLine = 1 << 20

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Apply actions read from stdin",
	Long: `Reads one JSON action envelope per line from stdin and dispatches each in
order, for example:

  {"type":"add","data":{"todoItem":{"title":"Buy milk"}}}
  {"type":"addTag","data":{"todoId":"<id>","tag":"errands"}}
  {"type":"filterByTag","data":{"tag":"errands"}}

The add and edit payloads may also be given without the todoItem wrapper.

Blank lines are skipped. A line that fails is reported and the rest still run;
the command exits 1 if any line failed.`,
	Args: cobra.NoArgs,
	RunE: runDispatch,
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	return withSession(true, func(s *session) error {
		return dispatchLines(s, cmd.InOrStdin())
	})
}

// dispatchLines applies each envelope in r and reports per-line results.
func dispatchLines(s *session, r io.Reader) error {
	results := []output.BatchResult{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxActionLine) //nolint:mnd // initial buffer
	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}

		res := output.BatchResult{Line: line, OK: true}
		if err := dispatchOne(s, data); err != nil {
			res = res.Fail(err)
		}
		results = append(results, res)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if len(results) == 0 && outputFormat() != output.FormatJSON {
		output.Messagef(os.Stdout, "No actions read")
		return nil
	}
	return reportBatch(results)
}

func dispatchOne(s *session, data []byte) error {
	a, err := todo.DecodeAction(data)
	if err != nil {
		return task.FromDispatch(err)
	}
	logger.Debug("dispatching", "action", a.Type())
	return s.dispatch(a)
}
