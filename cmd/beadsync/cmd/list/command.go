// Package list provides the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/internal/cmd/output"
	"github.com/agentstation/beadsync/internal/cmd/table"
	"github.com/agentstation/beadsync/pkg/issues"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		source string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List issues in the local store",
		Aliases: []string{"ls"},
		Example: `  beadsync list
  beadsync list --source jira -o wide
  beadsync list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			var want issues.Source
			if source != "" {
				if want, err = issues.ParseSource(source); err != nil {
					return err
				}
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			records, err := client.Records()
			if err != nil {
				return err
			}

			filtered := make([]issues.LocalRecord, 0, len(records))
			for _, r := range records {
				if want != "" && r.Source != want {
					continue
				}
				filtered = append(filtered, r)
			}
			if limit > 0 && len(filtered) > limit {
				filtered = filtered[:limit]
			}

			app.Logger().Debug().Int("records", len(filtered)).Msg("Listing records")

			rows := table.RecordsToTableData(filtered, format == output.FormatWide)
			return output.Print(cmd.OutOrStdout(), format, rows, filtered)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "only show records from this tracker")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of records to show (0 for all)")

	return cmd
}
