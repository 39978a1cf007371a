package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/registry"
)

var addFlagName string

var addCmd = &cobra.Command{
	Use:   "add <specifiers...>",
	Short: "Install packages into an environment",
	Long: `Install requirement specifiers into an environment and track them.

Without --name, packages are added to the currently active environment.
Tracked packages record what you asked for; the installed closure (with
transitive dependencies) is what 'venvman lock' captures.

Examples:
  # Add to the active environment
  venvman add requests "django>=4.2"

  # Add to a named environment
  venvman add numpy --name ml-sandbox`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addFlagName, "name", "", "Target environment (default: the active one)")

	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	name := addFlagName
	if name == "" {
		name, err = reg.AddPackagesToCurrent(args)
		if err != nil {
			if errors.Is(err, registry.ErrNoActiveEnvironment) {
				return fmt.Errorf("%w (activate one or pass --name)", err)
			}
			return err
		}
	} else {
		if err := reg.AddPackages(name, args); err != nil {
			return err
		}
	}

	fmt.Printf("Added %d package(s) to %s\n", len(args), name)
	return nil
}
