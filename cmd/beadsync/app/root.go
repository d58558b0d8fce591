package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/beadsync/cmd/beadsync/cmd/branch"
	"github.com/agentstation/beadsync/cmd/beadsync/cmd/fetch"
	"github.com/agentstation/beadsync/cmd/beadsync/cmd/list"
	"github.com/agentstation/beadsync/cmd/beadsync/cmd/pr"
	"github.com/agentstation/beadsync/cmd/beadsync/cmd/status"
	synccmd "github.com/agentstation/beadsync/cmd/beadsync/cmd/sync"
	"github.com/agentstation/beadsync/pkg/logging"
)

// Execute runs the command line in args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.createRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "beadsync",
		Short:   "Sync tracker issues into a local issue store",
		Version: a.build.Version,
		Long: `Beadsync pulls issues from Jira, GitHub, GitLab or Linear into a local
newline-delimited JSON issue store.

Each run normalizes the tracker's issues, matches them to local records by
tracker key and writes only what changed. Local-only fields such as the
local status are never overwritten. When a tracker is unreachable the
store is left untouched so existing issues remain available offline.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetVersionTemplate("beadsync {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.ConfigFile, "config", "", "config file (default ./.beadsync.yaml, then $HOME/.beadsync.yaml)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "debug logging")
	pf.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "warnings and errors only")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	pf.StringVarP(&a.flags.Format, "format", "o", "", "output format: table, wide, json, yaml")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&a.flags.Store, "store", "", "store directory (default $BEADSYNC_STORE or .beads)")

	root.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "workflow", Title: "Workflow Commands:"},
	)
	root.AddCommand(
		synccmd.NewCommand(a),
		fetch.NewCommand(a),
		status.NewCommand(a),
		list.NewCommand(a),
		branch.NewCommand(a),
		pr.NewCommand(a),
		a.versionCommand(),
	)
	return root
}

// setup runs before every command: it reads --config, applies the flags,
// and rebuilds the logger. Library code logs through the default logger,
// so that is replaced too.
func (a *App) setup(*cobra.Command, []string) error {
	if err := a.config.LoadConfigFile(a.flags.ConfigFile); err != nil {
		return err
	}
	a.config.Apply(a.flags)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	return nil
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("beadsync %s\n", a.build.Version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n  built:    %s\n  built by: %s\n", a.build.Commit, a.build.Date, a.build.BuiltBy)
			}
		},
	}
}
