package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	in := &options.InteractiveOptions{}
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:     "edit",
		Aliases: []string{"update"},
		Short:   "Change a task's fields or steps",
		Example: `
todo edit <task id> --title "buy oat milk"
todo edit <task id> --important=false -d ""
todo edit <task id> --add-step "find receipt" --toggle-step 2
todo edit -i --complete
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if in.Interactive {
				return nil
			}
			if len(args) != 1 {
				return errors.New("requires exactly one task id")
			}
			return io.ParseIDs(args)
		},
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changes, err := editChanges(cmd, eo)
			if err != nil {
				return output.HandleError(err)
			}
			if changes.Empty() {
				return output.HandleError(errors.New("nothing to change, see --help for the edit flags"))
			}

			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			if in.Interactive {
				id, err := options.PickTask(cmd.InOrStdin(), cmd.OutOrStdout(), "Edit which task", e.Engine.Tasks())
				if err != nil {
					return output.HandleError(err)
				}
				io.IDs = []int64{id}
			}

			s := edit.Edit{
				Engine:  e.Engine,
				ID:      io.IDs[0],
				Changes: changes,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, in)
	options.AddEditArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}

// editChanges keeps only the edit flags the user actually set.
func editChanges(cmd *cobra.Command, eo *options.EditOptions) (edit.Changes, error) {
	flags := cmd.Flags()
	c := edit.Changes{
		AddSteps:    eo.AddSteps,
		ToggleSteps: eo.ToggleSteps,
		RemoveSteps: eo.RemoveSteps,
	}
	if flags.Changed("title") {
		c.Title = &eo.Title
	}
	if flags.Changed("description") {
		c.Description = &eo.Description
	}
	if flags.Changed("complete") {
		c.Completed = &eo.Completed
	}
	if flags.Changed("important") {
		c.Important = &eo.Important
	}
	renames, err := edit.ParseRenames(eo.RenameSteps)
	if err != nil {
		return edit.Changes{}, err
	}
	c.RenameSteps = renames
	return c, nil
}
