package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeFlagForce bool

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an environment and its metadata",
	Long: `Remove an environment: its on-disk directory, its lockfile and its
registry record.

Examples:
  # Remove with confirmation
  venvman remove scratch

  # Remove without prompting
  venvman remove scratch --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeFlagForce, "force", false, "Skip confirmation prompt")

	RootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	env, err := reg.Get(name)
	if err != nil {
		return err
	}

	if !removeFlagForce {
		prompt := fmt.Sprintf("Remove environment %s (%d packages)?", env.Name, env.PackageCount)
		if !confirm(prompt) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := reg.Remove(name); err != nil {
		return err
	}

	fmt.Printf("Removed environment %s\n", name)
	return nil
}
