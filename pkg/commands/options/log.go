package options

import (
	"github.com/spf13/cobra"
)

// LogOptions override the logging section of the config file.
type LogOptions struct {
	Level  string
	Format string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error. Defaults to log.level from the config.")
	cmd.PersistentFlags().StringVar(&o.Format, "log-format", "",
		"Log format: text, json or logfmt. Defaults to log.format from the config.")
}

// Resolve returns the flag values, falling back to level and format.
func (o *LogOptions) Resolve(level, format string) (string, string) {
	if o.Level != "" {
		level = o.Level
	}
	if o.Format != "" {
		format = o.Format
	}
	return level, format
}
