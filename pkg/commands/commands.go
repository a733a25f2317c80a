package commands

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/logging"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/view"
)

var (
	output    = &options.OutputOptions{}
	logs      = &options.LogOptions{}
	ephemeral bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "todo",
		Short: base.Wrap80("A to-do list on the command line."),
		Long: base.Wrap80("Keep a list of tasks with optional descriptions, steps and an important flag. " +
			"Run without arguments on a terminal to pick a command interactively, or use `todo ui` for the full-screen list."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			printers.UseColor(os.Stdout)
			if output.JSON {
				cmd.SilenceErrors = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
				return PromptNext(cmd, args)
			}
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddLogArgs(cmd, logs)
	cmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"Keep tasks in memory only; nothing is read from or written to disk.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addComplete(topLevel)
	addImportant(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addStats(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is everything a command needs to work on the task list.
type env struct {
	Config    store.Config
	Logger    *log.Logger
	Engine    *app.Engine
	Projector view.Projector
}

// openEnv loads the config, sets up logging and opens the engine over the
// configured store.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	level, format := logs.Resolve(cfg.LogLevel(), cfg.LogFormat())
	logger := logging.New(os.Stderr, level, format)

	var st *store.TaskStorage
	if ephemeral {
		st = store.NewMemory()
	} else {
		st, err = store.Open(cfg)
		if err != nil {
			return nil, err
		}
	}
	st.Logger = logger

	engine, err := app.Open(ctx, st, app.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	tag, err := language.Parse(cfg.Locale())
	if err != nil {
		logger.Warn("unknown locale, using root collation", "locale", cfg.Locale(), "err", err)
		tag = language.Und
	}

	return &env{
		Config:    cfg,
		Logger:    logger,
		Engine:    engine,
		Projector: view.Projector{Locale: tag},
	}, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
