package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `
todo add buy milk
todo add call the bank -d "ask about the fee"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			ao.Title = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}

			s := add.Add{
				Engine:      e.Engine,
				Title:       ao.Title,
				Description: ao.Description,
				JSON:        output.JSON,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddDescriptionArg(cmd, ao)

	topLevel.AddCommand(cmd)
}
