package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/task"
	"tableflip.dev/todo/pkg/view"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(todo completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(todo completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			out := cmd.OutOrStdout()
			switch shell {
			case "bash":
				return topLevel.GenBashCompletionV2(out, true)
			case "zsh":
				return topLevel.GenZshCompletion(out)
			case "fish":
				return topLevel.GenFishCompletion(out, true)
			}
			return fmt.Errorf("unsupported shell %q", shell)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskIDCompletions offers the ids of stored tasks, described by title.
func taskIDCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tasks, err := st.Load(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return idCompletions(tasks, args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func idCompletions(tasks []task.Task, args []string, toComplete string) []string {
	used := make(map[string]struct{}, len(args))
	for _, a := range args {
		used[a] = struct{}{}
	}
	var out []string
	for _, t := range tasks {
		id := strconv.FormatInt(t.ID, 10)
		if _, ok := used[id]; ok {
			continue
		}
		if !strings.HasPrefix(id, toComplete) {
			continue
		}
		out = append(out, id+"\t"+t.Title)
	}
	return out
}

func sortCompletions() []string {
	out := make([]string, 0, len(view.SortFields))
	for _, f := range view.SortFields {
		out = append(out, f.String())
	}
	return out
}
