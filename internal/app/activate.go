package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Record an activation and print the source line",
	Long: `Record an activation of the named environment and print the command to
source its activate script.

The shell cannot be switched from a child process, so this command prints
the source line for the current shell to evaluate. The venvman-activate
function installed by 'venvman setup' does both steps in one call.

Examples:
  venvman activate ml-sandbox
  eval "$(venvman activate ml-sandbox | tail -1)"`,
	Args: cobra.ExactArgs(1),
	RunE: runActivate,
}

func init() {
	RootCmd.AddCommand(activateCmd)
}

func runActivate(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	env, err := reg.Activate(name, time.Now().UTC())
	if err != nil {
		return err
	}

	dataDir, err := getDataDir()
	if err != nil {
		return err
	}

	fmt.Printf("Recorded activation #%d of %s\n", env.UsageCount, env.Name)
	fmt.Printf("source %s\n", filepath.Join(dataDir, "envs", env.Name, "bin", "activate"))
	return nil
}
