package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/freeze"
	"github.com/blackwell-systems/venvman/internal/output"
)

var thawCmd = &cobra.Command{
	Use:   "thaw <name>",
	Short: "Rebuild an environment from its lockfile",
	Long: `Rebuild the environment's package set from its lockfile: the environment
is reset to an empty state and the locked (name, version) pairs are
installed exactly, with no resolution.

If an install fails the thaw stops there and reports which package failed
and which were not attempted. The lockfile itself is never modified by a
failed thaw, so the operation can be retried.

Examples:
  venvman thaw ml-sandbox`,
	Args: cobra.ExactArgs(1),
	RunE: runThaw,
}

func init() {
	RootCmd.AddCommand(thawCmd)
}

func runThaw(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	spinner := output.NewSpinner(fmt.Sprintf("Rebuilding %s from lockfile", name))
	spinner.Start()
	err = reg.Thaw(name)
	spinner.Stop()

	if err != nil {
		var installErr *freeze.InstallError
		if errors.As(err, &installErr) {
			fmt.Fprintf(os.Stderr, "Install failed for: %v\n", installErr.Failed)
			if len(installErr.Remaining) > 0 {
				fmt.Fprintf(os.Stderr, "Not attempted: %v\n", installErr.Remaining)
			}
			fmt.Fprintln(os.Stderr, "The environment may be partially populated; the lockfile is unchanged.")
		}
		return err
	}

	env, err := reg.Get(name)
	if err != nil {
		return err
	}

	fmt.Printf("Rebuilt %s with %d package(s)\n", name, env.PackageCount)
	return nil
}
