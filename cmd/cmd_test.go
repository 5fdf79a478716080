package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/activity"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

func newTestSession(t *testing.T, backend string) *session {
	t.Helper()
	cfg, err := config.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg.Storage.Backend = backend
	s, err := openSessionWith(cfg, true)
	if err != nil {
		t.Fatalf("openSessionWith: %v", err)
	}
	t.Cleanup(s.close)
	return s
}

func reopen(t *testing.T, s *session) *session {
	t.Helper()
	cfg := s.cfg
	s.close()
	s2, err := openSessionWith(cfg, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(s2.close)
	return s2
}

func errCode(err error) string {
	if ce, ok := clierr.As(err); ok {
		return ce.Code
	}
	return ""
}

func TestSessionPersistsAcrossOpen(t *testing.T) {
	for _, backend := range config.Backends {
		t.Run(backend, func(t *testing.T) {
			s := newTestSession(t, backend)
			if err := s.dispatch(todo.Add{Title: "Buy milk"}); err != nil {
				t.Fatalf("dispatch: %v", err)
			}

			s2 := reopen(t, s)

			items := s2.state().Items
			if len(items) != 1 || items[0].Title != "Buy milk" {
				t.Errorf("items after reopen = %+v, want [Buy milk]", items)
			}
		})
	}
}

func TestSessionWritesActivityLog(t *testing.T) {
	s := newTestSession(t, config.DefaultBackend)
	if err := s.dispatch(todo.Add{Title: "A"}); err != nil {
		t.Fatal(err)
	}

	entries, err := activity.New(s.cfg.Dir()).Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != string(todo.TypeAdd) {
		t.Errorf("entries = %+v, want one add", entries)
	}
}

func TestSessionDispatchErrors(t *testing.T) {
	s := newTestSession(t, config.DefaultBackend)

	err := s.dispatch(todo.Add{Title: "  "})
	if errCode(err) != clierr.InvalidInput {
		t.Errorf("blank title code = %q, want %q", errCode(err), clierr.InvalidInput)
	}

	err = s.dispatch(nil)
	if errCode(err) != clierr.UnknownAction {
		t.Errorf("nil action code = %q, want %q", errCode(err), clierr.UnknownAction)
	}
}

func TestDispatchLines(t *testing.T) {
	s := newTestSession(t, config.DefaultBackend)
	input := strings.Join([]string{
		`{"type":"add","data":{"todoItem":{"title":"A"}}}`,
		``,
		`{"type":"bogus"}`,
		`not json`,
		`{"type":"filterByTag","data":"errands"}`,
		`{"type":"add","data":{"title":"B"}}`,
	}, "\n")

	err := dispatchLines(s, strings.NewReader(input))

	var silent *clierr.SilentError
	if !errors.As(err, &silent) || silent.Code != 1 {
		t.Errorf("err = %v, want SilentError{1}", err)
	}
	items := s.state().Items
	if len(items) != 2 || items[0].Title != "B" || items[1].Title != "A" {
		t.Errorf("items = %+v, want [B A]", items)
	}
}

func TestDispatchLinesAllOK(t *testing.T) {
	s := newTestSession(t, config.DefaultBackend)
	input := strings.Join([]string{
		`{"type":"add","data":{"todoItem":{"title":"A"}}}`,
		`{"type":"filterByTag","data":{"tag":"errands"}}`,
		`{"type":"resetFilter"}`,
	}, "\n")

	if err := dispatchLines(s, strings.NewReader(input)); err != nil {
		t.Fatalf("dispatchLines: %v", err)
	}
}

func newEditCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "edit"}
	c.Flags().String("title", "", "")
	c.Flags().String("details", "", "")
	c.Flags().StringP("append-details", "a", "", "")
	c.Flags().Bool("done", false, "")
	c.Flags().Bool("open", false, "")
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func TestApplyEditFlags(t *testing.T) {
	it := todo.Item{ID: "1", Title: "Old", Details: "first", Done: true}

	tests := []struct {
		name     string
		args     []string
		wantCode string
		want     todo.Edit
	}{
		{name: "no flags", wantCode: clierr.NoChanges},
		{name: "blank title", args: []string{"--title", " "}, wantCode: clierr.InvalidInput},
		{name: "done and open", args: []string{"--done", "--open"}, wantCode: clierr.InvalidInput},
		{name: "details and append", args: []string{"--details", "x", "-a", "y"}, wantCode: clierr.InvalidInput},
		{
			name: "title keeps rest",
			args: []string{"--title", "New"},
			want: todo.Edit{ID: "1", Title: "New", Details: "first", Done: true},
		},
		{
			name: "append and reopen",
			args: []string{"-a", "second", "--open"},
			want: todo.Edit{ID: "1", Title: "Old", Details: "first\n\nsecond", Done: false},
		},
		{
			name: "clear details",
			args: []string{"--details", ""},
			want: todo.Edit{ID: "1", Title: "Old", Details: "", Done: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyEditFlags(newEditCmd(t, tt.args...), it)
			if tt.wantCode != "" {
				if errCode(err) != tt.wantCode {
					t.Errorf("err = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyEditFlags: %v", err)
			}
			if got != tt.want {
				t.Errorf("edit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveAddTitle(t *testing.T) {
	c := &cobra.Command{Use: "add"}
	c.Flags().String("title", "", "")

	if got, err := resolveAddTitle(c, []string{"A"}); err != nil || got != "A" {
		t.Errorf("positional = %q, %v", got, err)
	}
	if _, err := resolveAddTitle(c, nil); errCode(err) != clierr.InvalidInput {
		t.Errorf("missing title code = %q", errCode(err))
	}
	if _, err := resolveAddTitle(c, []string{" "}); errCode(err) != clierr.InvalidInput {
		t.Errorf("blank title code = %q", errCode(err))
	}

	_ = c.Flags().Set("title", "B")
	if _, err := resolveAddTitle(c, []string{"A"}); errCode(err) != clierr.InvalidInput {
		t.Errorf("both titles code = %q", errCode(err))
	}
}

func TestConfigSet(t *testing.T) {
	cfg, err := config.Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	acc := configAccessors()

	if err := setConfigValue(cfg, acc["tui.detail_lines"], "2"); err != nil {
		t.Fatalf("set detail_lines: %v", err)
	}
	if err := setConfigValue(cfg, acc["tui.detail_lines"], "9"); errCode(err) != clierr.InvalidConfig {
		t.Errorf("out of range code = %q, want %q", errCode(err), clierr.InvalidConfig)
	}
	if err := setConfigValue(cfg, acc["storage.backend"], "mysql"); errCode(err) != clierr.InvalidConfig {
		t.Errorf("bad backend code = %q", errCode(err))
	}
	if err := setConfigValue(cfg, acc["activity_log"], "false"); err != nil {
		t.Fatalf("set activity_log: %v", err)
	}

	loaded, err := config.Load(cfg.Dir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.TUI.DetailLines != 2 || loaded.ActivityLogEnabled() {
		t.Errorf("loaded = %+v, want detail_lines 2 and activity log off", loaded)
	}
}

func TestConfigKeysHaveAccessors(t *testing.T) {
	acc := configAccessors()
	for _, k := range allConfigKeys() {
		if _, ok := acc[k]; !ok {
			t.Errorf("key %q has no accessor", k)
		}
	}
	if _, err := lookupConfigKey("nope"); errCode(err) != clierr.InvalidInput {
		t.Errorf("unknown key code = %q", errCode(err))
	}
}

func TestTUIHelpWarnsLastWriterWins(t *testing.T) {
	if !strings.Contains(tuiCmd.Long, "last writer wins") || !strings.Contains(tuiCmd.Long, "session lock") {
		t.Errorf("tui help does not describe unlocked writes:\n%s", tuiCmd.Long)
	}
}
