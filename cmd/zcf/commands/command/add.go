package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/settings"
)

var (
	addPrompt  string
	addModel   string
	addContext bool
)

func init() {
	addCmd.Flags().StringVarP(&addPrompt, "prompt", "p", "", "prompt text (required)")
	addCmd.Flags().StringVar(&addModel, "model", "", "model to run the command with")
	addCmd.Flags().BoolVar(&addContext, "include-context", true, "send the current file as context")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Add or replace a custom command",
	Example: `  zcf command add explain --prompt "Explain the selected code"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		c := settings.CustomCommand{
			Name:           args[0],
			Prompt:         addPrompt,
			Model:          addModel,
			IncludeContext: addContext,
		}
		if err := reg.Add(c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added command %s\n", green("✓"), c.Name)
		return nil
	},
}
