package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	in := &options.InteractiveOptions{}
	yes := false

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete tasks",
		Example: `
todo delete <task id>
todo delete <task id> <task id> --yes
todo delete -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if in.Interactive {
				return nil
			}
			return io.ParseIDs(args)
		},
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			if in.Interactive {
				id, err := options.PickTask(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete which task", e.Engine.Tasks())
				if err != nil {
					return output.HandleError(err)
				}
				io.IDs = []int64{id}
			}

			s := remove.Remove{
				Engine: e.Engine,
				IDs:    io.IDs,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			if !yes && !output.JSON && isatty.IsTerminal(os.Stdin.Fd()) {
				s.Confirm = func(n int) (bool, error) {
					return options.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %d task(s)", n))
				}
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, in)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	topLevel.AddCommand(cmd)
}
