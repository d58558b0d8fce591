// Package branch provides the branch command.
package branch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/pkg/slug"
)

// NewCommand creates the branch command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "branch <id|key>",
		GroupID: "workflow",
		Short:   "Print the branch name for an issue",
		Long: `Branch prints a git branch name derived from a stored issue, in the
form <type>/<key>-<title-slug>. The issue can be given by local id or
tracker key.`,
		Example: `  git switch -c "$(beadsync branch PROJ-123)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			record, err := client.Find(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug.Branch(record))
			return nil
		},
	}
}
