package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/output"
	"github.com/blackwell-systems/venvman/internal/watcher"
)

var statusFlagCurrent bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show aggregate usage analytics",
	Long: `Show aggregate analytics over all environments: active vs unused counts,
total disk footprint, efficiency and the most-used ranking.

With --current, prints only the name of the active environment (for shell
prompts); exits silently when none is active.

Examples:
  venvman status
  venvman status --current`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusFlagCurrent, "current", false, "Print only the active environment name")

	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	if statusFlagCurrent {
		name, err := reg.Current()
		if err != nil {
			return err
		}
		if name != "" {
			fmt.Println(name)
		}
		return nil
	}

	summary, err := reg.Summarize(time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Print(output.RenderSummary(summary, time.Now().UTC()))

	if summary.UnusedCount > 0 {
		fmt.Printf("\nTip: 'venvman cleanup --dry-run' shows what the %d unused environment(s) would free.\n",
			summary.UnusedCount)
	}

	pidFile, err := getDefaultPIDFile()
	if err == nil {
		if running, _ := watcher.IsDaemonRunning(pidFile); !running {
			fmt.Println("\nThe activation watcher is not running; usage data may lag.")
			fmt.Println("Start it with 'venvman watch --daemon'.")
		}
	}

	return nil
}
