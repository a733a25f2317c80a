package options

import (
	"github.com/spf13/cobra"
)

// EditOptions hold the field updates for a single task. Only flags the user
// set are applied; check with cmd.Flags().Changed.
type EditOptions struct {
	Title       string
	Description string
	Completed   bool
	Important   bool

	AddSteps    []string
	RenameSteps []string
	ToggleSteps []int64
	RemoveSteps []int64
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"New title.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"New description.")
	cmd.Flags().BoolVar(&o.Completed, "complete", false,
		"Set the completed flag, e.g. --complete=false.")
	cmd.Flags().BoolVar(&o.Important, "important", false,
		"Set the important flag, e.g. --important=false.")

	cmd.Flags().StringArrayVar(&o.AddSteps, "add-step", nil,
		"Append a step with this title. Repeatable.")
	cmd.Flags().StringArrayVar(&o.RenameSteps, "rename-step", nil,
		`Rename a step, as "<step id>=<title>". Repeatable.`)
	cmd.Flags().Int64SliceVar(&o.ToggleSteps, "toggle-step", nil,
		"Flip the completed flag of a step. Repeatable.")
	cmd.Flags().Int64SliceVar(&o.RemoveSteps, "remove-step", nil,
		"Remove a step. Repeatable.")
}
