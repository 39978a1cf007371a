package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagFlagDescription string

var tagCmd = &cobra.Command{
	Use:   "tag <name> [tags...]",
	Short: "Edit an environment's tags and description",
	Long: `Replace an environment's tag set, and optionally its description.

Called with only a name, the current tags are printed. Tags are a set:
duplicates collapse and order is not significant.

Examples:
  # Show tags
  venvman tag ml-sandbox

  # Replace tags
  venvman tag ml-sandbox ml gpu experiments

  # Clear tags and set a description
  venvman tag ml-sandbox --description "old experiments"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTag,
}

func init() {
	tagCmd.Flags().StringVar(&tagFlagDescription, "description", "", "Set the environment description")

	RootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	name := args[0]
	tags := args[1:]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	if len(tags) == 0 && !cmd.Flags().Changed("description") {
		env, err := reg.Get(name)
		if err != nil {
			return err
		}
		if len(env.Tags) == 0 {
			fmt.Println("No tags.")
		} else {
			fmt.Println(strings.Join(env.Tags, ", "))
		}
		return nil
	}

	if len(tags) > 0 {
		if err := reg.SetTags(name, dedupTags(tags)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("description") {
		if err := reg.SetDescription(name, tagFlagDescription); err != nil {
			return err
		}
	}

	fmt.Printf("Updated %s\n", name)
	return nil
}

// dedupTags collapses duplicate tags, keeping first occurrence order.
func dedupTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
