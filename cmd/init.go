package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a task list data directory",
	Long: `Creates a .tasklist directory with config.yml in the current directory
(or the directory given by --dir). Commands run anywhere below it use it.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("backend", config.DefaultBackend, "storage backend (file, sqlite)")
	initCmd.Flags().String("key", config.DefaultKey, "storage key the list is kept under")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.AlreadyInitialized, "task list already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	backend, _ := cmd.Flags().GetString("backend")
	if err := task.ValidateOneOf(clierr.InvalidConfig, "backend", backend, config.Backends); err != nil {
		return err
	}
	key, _ := cmd.Flags().GetString("key")

	cfg := config.NewDefault()
	cfg.SetDir(absDir)
	cfg.Storage.Backend = backend
	cfg.Storage.Key = key
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidConfig, "invalid settings", err)
	}

	if _, err := config.Init(absDir); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":  "initialized",
			"dir":     absDir,
			"config":  cfg.ConfigPath(),
			"backend": cfg.Storage.Backend,
			"storage": cfg.StoragePath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized task list in %s", absDir)
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Storage: %s (%s)", cfg.StoragePath(), cfg.Storage.Backend)
	return nil
}
