package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/output"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics [name]",
	Short: "Show per-environment usage detail",
	Long: `Show the detailed analytics view for one environment: creation date,
measured size, package count, activation history and unused status.

Without a name, the detail of the currently active environment is shown.

Examples:
  venvman analytics ml-sandbox
  venvman analytics`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalytics,
}

func init() {
	RootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = reg.Current()
		if err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("no environment is currently active; pass a name")
		}
	}

	spinner := output.NewSpinner(fmt.Sprintf("Measuring %s", name))
	spinner.Start()
	detail, err := reg.EnvironmentAnalytics(name, time.Now().UTC())
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderEnvironmentDetail(detail, reg.LockfilePath(name), time.Now().UTC()))
	return nil
}
