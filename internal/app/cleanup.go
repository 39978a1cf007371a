package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/venvman/internal/analyzer"
	"github.com/blackwell-systems/venvman/internal/output"
	"github.com/blackwell-systems/venvman/internal/store"
)

var (
	cleanupFlagDryRun    bool
	cleanupFlagYes       bool
	cleanupFlagOlderThan int
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove unused environments",
	Long: `Remove environments that have not been activated within the unused
threshold (default 30 days, configurable via unused_threshold_days).
Never-used environments count as unused regardless of age.

Examples:
  # Preview what would be removed
  venvman cleanup --dry-run

  # Remove environments idle for 90+ days without prompting
  venvman cleanup --older-than-days 90 --yes`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupFlagDryRun, "dry-run", false, "Show what would be removed without removing")
	cleanupCmd.Flags().BoolVar(&cleanupFlagYes, "yes", false, "Skip confirmation prompt")
	cleanupCmd.Flags().IntVar(&cleanupFlagOlderThan, "older-than-days", 0, "Override the unused threshold in days")

	RootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	envs, err := reg.List()
	if err != nil {
		return err
	}

	threshold := reg.UnusedThresholdDays()
	if cleanupFlagOlderThan > 0 {
		threshold = cleanupFlagOlderThan
	}

	now := time.Now().UTC()
	var unused []*store.Environment
	for _, env := range envs {
		if analyzer.IsUnused(env, now, threshold) {
			unused = append(unused, env)
		}
	}

	if len(unused) == 0 {
		fmt.Println("No unused environments.")
		return nil
	}

	fmt.Print(output.RenderUnusedTable(unused, now))

	if cleanupFlagDryRun {
		fmt.Println("\nDry run: nothing removed.")
		return nil
	}

	if !cleanupFlagYes {
		if !confirm(fmt.Sprintf("Remove %d environment(s)?", len(unused))) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	progress := output.NewProgress(len(unused), "Removing environments")
	removed := 0
	for _, env := range unused {
		progress.SetDescription(fmt.Sprintf("Removing %s", env.Name))
		if err := reg.Remove(env.Name); err != nil {
			progress.Finish()
			return fmt.Errorf("failed to remove %s: %w", env.Name, err)
		}
		removed++
		progress.Increment()
	}
	progress.Finish()

	fmt.Printf("Removed %d environment(s)\n", removed)
	return nil
}
