package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"dir": {
			get: func(c *config.Config) any { return c.Dir() },
		},
		"storage.backend": {
			get: func(c *config.Config) any { return c.Storage.Backend },
			set: func(c *config.Config, v string) error {
				if err := task.ValidateOneOf(clierr.InvalidConfig, "storage.backend", v, config.Backends); err != nil {
					return err
				}
				c.Storage.Backend = v
				return nil
			},
			writable: true,
		},
		"storage.path": {
			get: func(c *config.Config) any { return c.StoragePath() },
			set: func(c *config.Config, v string) error {
				c.Storage.Path = v
				return nil
			},
			writable: true,
		},
		"storage.key": {
			get: func(c *config.Config) any { return c.StorageKey() },
			set: func(c *config.Config, v string) error {
				c.Storage.Key = v
				return nil // validation handles the character set
			},
			writable: true,
		},
		"tui.detail_lines": {
			get: func(c *config.Config) any { return c.TUI.DetailLines },
			set: func(c *config.Config, v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidConfig,
						"invalid tui.detail_lines %q: must be an integer", v)
				}
				c.TUI.DetailLines = n
				return nil // validation handles range check
			},
			writable: true,
		},
		"tui.markdown": {
			get: func(c *config.Config) any { return c.TUI.Markdown },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidConfig, "invalid tui.markdown %q: must be true or false", v)
				}
				c.TUI.Markdown = b
				return nil
			},
			writable: true,
		},
		"activity_log": {
			get: func(c *config.Config) any { return c.ActivityLogEnabled() },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidConfig, "invalid activity_log %q: must be true or false", v)
				}
				c.SetActivityLog(b)
				return nil
			},
			writable: true,
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"dir",
		"storage.backend",
		"storage.path",
		"storage.key",
		"tui.detail_lines",
		"tui.markdown",
		"activity_log",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-18s %v\n", key, accessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupConfigKey(args[0])
	if err != nil {
		return err
	}
	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	fmt.Fprintln(os.Stdout, val)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, err := lookupConfigKey(key)
	if err != nil {
		return err
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := setConfigValue(cfg, acc, value); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, acc.get(cfg))
	return nil
}

func lookupConfigKey(key string) (configAccessor, error) {
	acc, ok := configAccessors()[key]
	if !ok {
		return acc, clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
			WithDetails(map[string]any{"key": key, "allowed": allConfigKeys()})
	}
	return acc, nil
}

// setConfigValue applies, validates and saves one change. cfg is left
// untouched when the change is rejected.
func setConfigValue(cfg *config.Config, acc configAccessor, value string) error {
	next := *cfg
	if err := acc.set(&next, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidConfig, "invalid config", err)
	}
	if err := next.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*cfg = next
	return nil
}
