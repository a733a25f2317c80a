package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// choice is one row of an interactive picker.
type choice struct {
	Name  string
	Usage string
	flag  *pflag.Flag
}

const doneChoice = "done"

// PromptNext lets the user pick a subcommand, its arguments and flags, then
// runs it.
func PromptNext(cmd *cobra.Command, args []string) error {
	subcommands := runnable(cmd)
	if len(subcommands) == 0 {
		return cmd.Help()
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name }} {{ .Short | cyan }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "➜  {{ .Name }} {{ .Short | cyan }}",
		Details: `
--------- Example ----------
{{ .Example }}
`,
	}

	searcher := func(input string, index int) bool {
		sub := subcommands[index]
		name := strings.Replace(strings.ToLower(sub.Name()+sub.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Commands",
		Items:     subcommands,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return quietAbort(err)
	}
	next := subcommands[i]

	if next.HasAvailableSubCommands() {
		return PromptNext(next, args)
	}

	if !acceptsNoArgs(next) {
		more, err := promptText(next, fmt.Sprintf("%s arguments", next.Name()))
		if err != nil {
			return quietAbort(err)
		}
		args = append(args, strings.Fields(more)...)
	}

	if err := PromptFlags(next); err != nil {
		return quietAbort(err)
	}

	if err := next.ValidateArgs(args); err != nil {
		return err
	}
	if next.RunE != nil {
		return next.RunE(next, args)
	}
	if next.Run != nil {
		next.Run(next, args)
		return nil
	}
	return next.Help()
}

// PromptFlags asks for flag values until the user picks done.
func PromptFlags(cmd *cobra.Command) error {
	choices := flagChoices(cmd)
	if len(choices) == 1 {
		return nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . | magenta }}?",
		Active:   "➜  {{ .Name }} {{ .Usage | cyan }}",
		Inactive: "   {{ .Name }} {{ .Usage | cyan }}",
		Selected: "➜  {{ .Name }}",
	}

	for {
		prompt := promptui.Select{
			HideHelp:  true,
			Label:     "Flags",
			Items:     choices,
			Templates: templates,
			Size:      10,
			Stdin:     io.NopCloser(cmd.InOrStdin()),
			Stdout:    NopCloser(cmd.OutOrStdout()),
		}

		i, _, err := prompt.Run()
		if err != nil {
			return err
		}
		picked := choices[i]
		if picked.flag == nil {
			return nil
		}

		value, err := promptText(cmd, picked.Name)
		if err != nil {
			return err
		}
		if err := cmd.Flags().Set(picked.Name, value); err != nil {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "invalid value for --%s: %v\n", picked.Name, err)
		}
	}
}

// runnable lists the subcommands worth offering.
func runnable(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() || sub.Name() == "completion" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// flagChoices lists the command's own flags followed by the done entry.
func flagChoices(cmd *cobra.Command) []choice {
	var out []choice
	cmd.NonInheritedFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		out = append(out, choice{Name: f.Name, Usage: f.Usage, flag: f})
	})
	return append(out, choice{Name: doneChoice, Usage: "run the command"})
}

func acceptsNoArgs(cmd *cobra.Command) bool {
	if cmd.Args == nil {
		return false
	}
	return cmd.Args(cmd, []string{"x"}) != nil && cmd.Args(cmd, nil) == nil
}

func promptText(cmd *cobra.Command, label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  io.NopCloser(cmd.InOrStdin()),
		Stdout: NopCloser(cmd.OutOrStdout()),
	}
	return prompt.Run()
}

// quietAbort treats ctrl-c and ctrl-d as a normal exit.
func quietAbort(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return nil
	}
	return err
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
