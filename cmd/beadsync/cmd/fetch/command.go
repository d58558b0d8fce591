// Package fetch provides the fetch command.
package fetch

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/internal/cmd/emoji"
	"github.com/agentstation/beadsync/internal/cmd/output"
	"github.com/agentstation/beadsync/internal/cmd/table"
	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// NewCommand creates the fetch command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		project   string
		component string
		all       bool
	)

	cmd := &cobra.Command{
		Use:     "fetch <source>...",
		GroupID: "core",
		Short:   "Show tracker issues without touching the store",
		Long: `Fetch pulls issues from one or more trackers concurrently and prints
them normalized, without reading or writing the local store. Use it to
check credentials and preview what a sync would see.`,
		Example: `  beadsync fetch jira
  beadsync fetch github gitlab -o json`,
		Args: cobra.MinimumNArgs(1),
		ValidArgs: []string{
			string(issues.SourceJira),
			string(issues.SourceGitHub),
			string(issues.SourceGitLab),
			string(issues.SourceLinear),
			string(issues.SourceExample),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]issues.Source, 0, len(args))
			for _, arg := range args {
				id, err := issues.ParseSource(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			query := issues.Query{ProjectKey: project, Component: component, OpenOnly: !all}
			batches, err := client.Fetch(cmd.Context(), query, ids...)
			if err != nil {
				return err
			}

			var fetched []issues.CanonicalIssue
			var failed []error
			for _, b := range batches {
				if b.Err != nil {
					app.Logger().Error().Err(b.Err).Str("source", string(b.Source)).Msg("Fetch failed")
					failed = append(failed, b.Err)
					continue
				}
				app.Logger().Debug().
					Str("source", string(b.Source)).
					Int("issues", len(b.Issues)).
					Dur("duration", b.Duration).
					Msg("Fetched issues")
				fetched = append(fetched, b.Issues...)
			}

			if err := output.Print(cmd.OutOrStdout(), format, table.IssuesToTableData(fetched), fetched); err != nil {
				return err
			}
			if format.IsTable() {
				printBatches(cmd.ErrOrStderr(), batches)
			}

			if len(failed) == len(batches) {
				return errors.Join(failed...)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project key override (Jira project, Linear team)")
	cmd.Flags().StringVar(&component, "component", "", "component or label to scope the fetch to")
	cmd.Flags().BoolVar(&all, "all", false, "include closed issues")

	return cmd
}

func printBatches(w io.Writer, batches []sources.Batch) {
	for _, b := range batches {
		if b.Err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", emoji.Error, b.Source, b.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s: %d issues in %s\n", emoji.Success, b.Source, len(b.Issues), b.Duration.Round(time.Millisecond))
	}
}
