package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/output"
)

var freezeFlagTrackedOnly bool

var freezeCmd = &cobra.Command{
	Use:   "freeze <name>",
	Short: "Show the environment's package set",
	Long: `Show the environment's installed packages as exact (name, version) pairs.

With --tracked-only, only the specifiers you explicitly added via
'venvman add' are shown, in the order you first added them.

Examples:
  venvman freeze ml-sandbox
  venvman freeze ml-sandbox --tracked-only`,
	Args: cobra.ExactArgs(1),
	RunE: runFreeze,
}

func init() {
	freezeCmd.Flags().BoolVar(&freezeFlagTrackedOnly, "tracked-only", false, "Show only explicitly added packages")

	RootCmd.AddCommand(freezeCmd)
}

func runFreeze(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	if freezeFlagTrackedOnly {
		tracked, err := reg.TrackedPackages(name)
		if err != nil {
			return err
		}
		if len(tracked) == 0 {
			fmt.Println("No tracked packages.")
			return nil
		}
		for _, spec := range tracked {
			fmt.Println(spec)
		}
		return nil
	}

	pkgs, err := reg.InstalledPackages(name)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderPackageTable(pkgs))
	return nil
}
