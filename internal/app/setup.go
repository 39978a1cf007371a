package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/shell"
)

var setupFlagPrint bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the shell activation hook",
	Long: `Install the venvman-activate shell function into your shell config.

The function sources the environment's activate script and appends an
activation event to the spool, so the watcher can update usage counters.
Re-running setup is a no-op if the hook is already installed.

Examples:
  # Install the hook for your $SHELL
  venvman setup

  # Print the hook instead of installing it
  venvman setup --print`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupFlagPrint, "print", false, "Print the hook instead of modifying shell config")

	RootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	dataDir, err := getDataDir()
	if err != nil {
		return err
	}

	if setupFlagPrint {
		fmt.Print(shell.Hook(filepath.Base(os.Getenv("SHELL")), dataDir))
		return nil
	}

	added, configFile, err := shell.InstallHook(dataDir)
	if err != nil {
		return err
	}

	if added {
		fmt.Printf("Installed shell hook in %s\n", configFile)
		fmt.Println("Restart your shell (or source the file) to pick it up.")
		fmt.Println("\nThen start the watcher: venvman watch --daemon")
	} else {
		fmt.Println("Shell hook already installed.")
	}
	return nil
}
