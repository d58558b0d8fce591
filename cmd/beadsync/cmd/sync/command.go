// Package sync provides the sync command.
package sync

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/internal/cmd/emoji"
	"github.com/agentstation/beadsync/internal/cmd/output"
	"github.com/agentstation/beadsync/internal/cmd/table"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	pkgsync "github.com/agentstation/beadsync/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	Source         string
	Project        string
	Component      string
	Filter         string
	All            bool
	DryRun         bool
	Audit          bool
	Timeout        time.Duration
	UseExampleData bool
}

// NewCommand creates the sync command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Pull issues from a tracker into the local store",
		Long: `Sync fetches issues from one tracker and reconciles them with the local
store. New issues are created, changed issues are updated and unchanged
issues are skipped. The local status of existing records is kept.

Credentials are read from the environment, .env files or the config file.
Run 'beadsync status' to see which trackers are configured.`,
		Example: `  beadsync sync --source jira
  beadsync sync --source github --dry-run
  beadsync sync --source linear --filter 'priority <= 1'
  beadsync sync --use-example-data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	settings := app.Settings()
	cmd.Flags().StringVarP(&flags.Source, "source", "s", settings.Source, "tracker to sync: jira, github, gitlab, linear")
	cmd.Flags().StringVar(&flags.Project, "project", settings.Project, "project key override (Jira project, Linear team)")
	cmd.Flags().StringVar(&flags.Component, "component", settings.Component, "component or label to scope the sync to")
	cmd.Flags().StringVar(&flags.Filter, "filter", settings.Filter, "expression selecting which issues to keep")
	cmd.Flags().BoolVar(&flags.All, "all", false, "include closed issues")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show what would change without writing the store")
	cmd.Flags().BoolVar(&flags.Audit, "audit", settings.Audit, "append a change entry to the audit log")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "timeout for the whole run (0 for none)")
	cmd.Flags().BoolVar(&flags.UseExampleData, "use-example-data", false, "sync the built-in example issues instead of a tracker")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	logger := app.Logger()

	source := flags.Source
	if flags.UseExampleData {
		source = string(issues.SourceExample)
	}
	if source == "" {
		return &errors.ConfigError{Component: "source", Message: "no source given; use --source or set source in .beadsync.yaml"}
	}
	id, err := issues.ParseSource(source)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	result, err := client.Sync(cmd.Context(),
		pkgsync.WithSource(id),
		pkgsync.WithProject(flags.Project),
		pkgsync.WithComponent(flags.Component),
		pkgsync.WithFilter(flags.Filter),
		pkgsync.WithOpenOnly(!flags.All),
		pkgsync.WithDryRun(flags.DryRun),
		pkgsync.WithAudit(flags.Audit),
		pkgsync.WithTimeout(flags.Timeout),
	)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("source", string(result.Source)).
		Dur("duration", result.Duration).
		Msg(result.Summary())

	if !format.IsTable() {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), newReport(result))
	}

	color.NoColor = color.NoColor || app.Settings().NoColor
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// Report is the structured form of a sync result.
type Report struct {
	Source   issues.Source `json:"source" yaml:"source"`
	Fetched  int           `json:"fetched" yaml:"fetched"`
	Filtered int           `json:"filtered" yaml:"filtered"`
	Created  []string      `json:"created" yaml:"created"`
	Updated  []string      `json:"updated" yaml:"updated"`
	Skipped  int           `json:"skipped" yaml:"skipped"`
	Failed   []Failure     `json:"failed,omitempty" yaml:"failed,omitempty"`
	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Store    string        `json:"store" yaml:"store"`
	Duration string        `json:"duration" yaml:"duration"`
}

// Failure is one issue that could not be reconciled.
type Failure struct {
	Key   string `json:"key" yaml:"key"`
	Error string `json:"error" yaml:"error"`
}

func newReport(r *pkgsync.Result) Report {
	rep := Report{
		Source:   r.Source,
		Fetched:  r.Fetched,
		Filtered: r.Filtered,
		Created:  []string{},
		Updated:  []string{},
		Skipped:  r.Skipped,
		DryRun:   r.DryRun,
		Store:    r.StoreDir,
		Duration: r.Duration.Round(time.Millisecond).String(),
	}
	if r.Changes == nil {
		return rep
	}
	for _, c := range r.Changes.Created {
		rep.Created = append(rep.Created, c.SourceKey)
	}
	for _, u := range r.Changes.UpdatedRecords() {
		rep.Updated = append(rep.Updated, u.SourceKey)
	}
	for _, f := range r.Changes.Failures {
		rep.Failed = append(rep.Failed, Failure{Key: f.SourceKey, Error: f.Err.Error()})
	}
	return rep
}

// printSummary writes the human readable result.
func printSummary(w io.Writer, r *pkgsync.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	symbol := green(emoji.Success)
	switch {
	case r.DryRun:
		symbol = yellow(emoji.DryRun)
	case r.Failed > 0:
		symbol = yellow(emoji.Warning)
	}
	fmt.Fprintf(w, "%s %s\n", symbol, r.Summary())

	if r.Changes != nil {
		for _, c := range r.Changes.Created {
			fmt.Fprintf(w, "  %s %s %s\n", green("+"), c.SourceKey, table.Truncate(c.Title, 60))
		}
		for _, u := range r.Changes.Updated {
			fmt.Fprintf(w, "  %s %s %s\n", yellow("~"), u.After.SourceKey, table.Truncate(u.After.Title, 60))
			for _, fc := range u.Changes {
				fmt.Fprintf(w, "      %s\n", fc.String())
			}
		}
		for _, f := range r.Changes.Failures {
			fmt.Fprintf(w, "  %s %s %v\n", red(emoji.Error), f.SourceKey, f.Err)
		}
	}

	if r.DryRun {
		fmt.Fprintln(w, "Dry run: no changes were written")
	}
}
