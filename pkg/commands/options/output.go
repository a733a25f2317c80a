package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object when JSON output is on. The
// error is still returned so the exit status reflects the failure.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, merr := json.Marshal(out)
		if merr != nil {
			return merr
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
	}
	return err
}
