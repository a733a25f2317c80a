package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
todo ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := openEnv(contextOf(cmd))
			if err != nil {
				return err
			}
			i := ui.UI{
				Engine:    e.Engine,
				Config:    e.Config,
				Watch:     !ephemeral,
				Projector: e.Projector,
				Logger:    e.Logger,
			}
			return i.Do(contextOf(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}
