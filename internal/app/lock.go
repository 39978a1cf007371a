package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/output"
)

var lockCmd = &cobra.Command{
	Use:   "lock <name>",
	Short: "Capture the environment's package set into its lockfile",
	Long: `Capture the environment's full installed closure, including transitive
dependencies, into a deterministic lockfile. A new lock replaces the prior
snapshot atomically.

Examples:
  venvman lock ml-sandbox`,
	Args: cobra.ExactArgs(1),
	RunE: runLock,
}

func init() {
	RootCmd.AddCommand(lockCmd)
}

func runLock(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	spinner := output.NewSpinner(fmt.Sprintf("Locking %s", name))
	spinner.Start()
	err = reg.Freeze(name)
	spinner.Stop()
	if err != nil {
		return err
	}

	env, err := reg.Get(name)
	if err != nil {
		return err
	}

	fmt.Printf("Locked %d package(s) to %s\n", env.PackageCount, reg.LockfilePath(name))
	return nil
}
