package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/config"
)

var (
	dbPath  string
	rootDir string

	// RootCmd is the root command for venvman
	RootCmd = &cobra.Command{
		Use:   "venvman",
		Short: "Named Python virtual environments with usage tracking",
		Long: `venvman manages named Python virtual environments with usage tracking,
reproducible lockfiles and analytics over environment activity.

Environments are provisioned with uv and live under ~/.venvman/envs.
Activating one through the shell hook records the activation, so venvman
can tell you which environments you actually use and which ones are just
taking up disk.

Quick Start:
  1. venvman setup            # install the shell hook
  2. venvman create myenv --python 3.12
  3. venvman-activate myenv   # from your shell
  4. venvman add requests
  5. venvman lock myenv       # pin the exact package set

Examples:
  # List environments with usage data
  venvman list

  # Aggregate usage analytics
  venvman status

  # Rebuild an environment from its lockfile
  venvman thaw myenv

  # Find and remove unused environments
  venvman cleanup --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := getDataDir()
			if err == nil {
				if _, statErr := os.Stat(filepath.Join(dataDir, "venvman.db")); os.IsNotExist(statErr) {
					fmt.Println("venvman: named Python virtual environments with usage tracking")
					fmt.Println()
					fmt.Println("Run 'venvman setup' to get started.")
					fmt.Println("Run 'venvman --help' for the full reference.")
					return nil
				}
			}
			fmt.Println("venvman: named Python virtual environments with usage tracking")
			fmt.Println()
			fmt.Println("Tip: Run 'venvman list' to see your environments.")
			fmt.Println("     Run 'venvman status' for usage analytics.")
			fmt.Println("     Run 'venvman --help' for all commands.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.venvman/venvman.db)")
	RootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "data directory (default: ~/.venvman)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDataDir returns the venvman data directory: the --root flag, the
// configured data_dir, or ~/.venvman. The directory is created if missing.
func getDataDir() (string, error) {
	dir := rootDir
	if dir == "" {
		cfg := loadConfig()
		resolved, err := cfg.ResolveDataDir()
		if err != nil {
			return "", err
		}
		dir = resolved
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create venvman directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the database path, using the flag value or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dataDir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "venvman.db"), nil
}

// getSpoolDir returns the activation event spool directory.
func getSpoolDir() (string, error) {
	dataDir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "events"), nil
}

// getDefaultPIDFile returns the default watcher PID file path.
func getDefaultPIDFile() (string, error) {
	dataDir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "watch.pid"), nil
}

// getDefaultLogFile returns the default watcher log file path.
func getDefaultLogFile() (string, error) {
	dataDir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "watch.log"), nil
}

// loadConfig loads the user config, falling back to defaults when the config
// directory cannot be resolved or the file is unreadable.
func loadConfig() *config.Config {
	dir, err := config.Dir()
	if err != nil {
		return &config.Config{}
	}
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return &config.Config{}
	}
	return cfg
}
