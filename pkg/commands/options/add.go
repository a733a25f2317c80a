package options

import (
	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Title       string
	Description string
}

func AddDescriptionArg(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the task.")
}
