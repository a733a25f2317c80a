package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where tasks are stored.",
		Example: `
todo info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config: e.Config,
				Engine: e.Engine,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(contextOf(cmd))
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
