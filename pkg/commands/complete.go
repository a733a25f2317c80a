package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/complete"
	"tableflip.dev/todo/pkg/runner/important"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"completed", "done"},
		Short:   "Toggle whether tasks are completed",
		Example: `
todo complete <task id>
todo complete <task id> <task id>
todo complete -i
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
				id, err := options.PickTask(cmd.InOrStdin(), cmd.OutOrStdout(), "Complete which task", e.Engine.Tasks())
				if err != nil {
					return output.HandleError(err)
				}
				io.IDs = []int64{id}
			}

			s := complete.Complete{
				Engine: e.Engine,
				IDs:    io.IDs,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, in)

	topLevel.AddCommand(cmd)
}

func addImportant(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "important",
		Aliases: []string{"star", "flag"},
		Short:   "Toggle whether tasks are important",
		Example: `
todo important <task id>
todo important -i
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
				id, err := options.PickTask(cmd.InOrStdin(), cmd.OutOrStdout(), "Flag which task", e.Engine.Tasks())
				if err != nil {
					return output.HandleError(err)
				}
				io.IDs = []int64{id}
			}

			s := important.Important{
				Engine: e.Engine,
				IDs:    io.IDs,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, in)

	topLevel.AddCommand(cmd)
}
