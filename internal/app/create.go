package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	createFlagPython      string
	createFlagDescription string
	createFlagTags        []string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new named virtual environment",
	Long: `Create a new named virtual environment provisioned with uv.

The environment starts never-used: its usage counter is zero until it is
activated through the shell hook or 'venvman activate'.

Examples:
  # Create with the default Python
  venvman create scratch

  # Pin the interpreter and add metadata
  venvman create ml-sandbox --python 3.12 --description "experiments" --tags ml,gpu`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createFlagPython, "python", "", "Python version for the environment (default: uv's choice)")
	createCmd.Flags().StringVar(&createFlagDescription, "description", "", "Free-form description")
	createCmd.Flags().StringSliceVar(&createFlagTags, "tags", nil, "Comma-separated tags")

	RootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	reg, closer, err := openRegistry()
	if err != nil {
		return err
	}
	defer closer()

	python := createFlagPython
	if python == "" {
		python = loadConfig().DefaultPython
	}

	env, err := reg.Create(name, python, createFlagDescription, createFlagTags, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("Created environment %s", env.Name)
	if env.PythonVersion != "" {
		fmt.Printf(" (python %s)", env.PythonVersion)
	}
	fmt.Println()
	fmt.Printf("Activate it with: venvman-activate %s\n", env.Name)
	return nil
}
