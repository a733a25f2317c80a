package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	qo := &options.QueryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Example: `
todo list
todo list -s milk --sort title
todo list --sort important --desc -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			q, err := qo.Query()
			if err != nil {
				return output.HandleError(err)
			}
			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}

			s := list.List{
				Engine:    e.Engine,
				Projector: e.Projector,
				Query:     q,
				ShowID:    io.ShowID,
				JSON:      output.JSON,
				Out:       cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddQueryArgs(cmd, qo)
	options.AddShowIDArgs(cmd, io)

	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return sortCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
