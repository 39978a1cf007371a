package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List environments with usage data",
	Long: `List all registered environments with their Python version, size, usage
counters and tags. The currently active environment is marked with an
asterisk.`,
	RunE: runList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	envs, err := reg.List()
	if err != nil {
		return err
	}

	current, err := reg.Current()
	if err != nil {
		current = ""
	}

	fmt.Print(output.RenderEnvironmentTable(envs, current, time.Now().UTC()))
	return nil
}
