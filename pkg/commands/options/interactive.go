package options

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/task"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Pick the task from a list instead of passing an id.`)
}

// ErrNoTasks is returned by PickTask when there is nothing to pick.
var ErrNoTasks = errors.New("no tasks")

// PickTask shows a searchable list of tasks and returns the chosen id.
func PickTask(in io.Reader, out io.Writer, label string, tasks []task.Task) (int64, error) {
	if len(tasks) == 0 {
		return 0, ErrNoTasks
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Title | bold }} {{ .Description | cyan }}",
		Inactive: "   {{ .Title }} {{ .Description | cyan }}",
		Selected: "➜  {{ .Title }}",
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		name := strings.Replace(strings.ToLower(t.Title+t.Description), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(in),
		Stdout:    nopWriteCloser{out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return tasks[i].ID, nil
}

// Confirm asks a yes/no question. Anything but a yes answer is false.
func Confirm(in io.Reader, out io.Writer, label string) (bool, error) {
	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} [y/N]: ",
		Valid:   "{{ . | green }} [y/N]: ",
		Invalid: "{{ . | red }} [y/N]: ",
		Success: "{{ . | bold }} ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(in),
		Stdout:    nopWriteCloser{out},
	}

	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	yes, _ := ParseBool(result)
	return yes, nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, fmt.Errorf("ParseBool: parsing %q: invalid syntax", str)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
