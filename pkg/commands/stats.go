package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/stats"
	"tableflip.dev/todo/pkg/timeutil"
)

func addStats(topLevel *cobra.Command) {
	since := ""

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how many tasks are done",
		Example: `
todo stats
todo stats --json
todo stats --since 1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			var window timeutil.Window
			if since != "" {
				w, err := timeutil.ParseWindow(since)
				if err != nil {
					return output.HandleError(err)
				}
				window = w
			}
			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Stats{
				Engine: e.Engine,
				Window: window,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&since, "since", "",
		"Only count tasks created within this window, e.g. 3d or 1w2d.")

	topLevel.AddCommand(cmd)
}
