// Package pr provides the pr command.
package pr

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/beadsync/internal/cmd/application"
	"github.com/agentstation/beadsync/internal/cmd/output"
	"github.com/agentstation/beadsync/pkg/slug"
)

// Description is the structured form of a pull request description.
type Description struct {
	Title    string        `json:"title" yaml:"title"`
	Body     string        `json:"body" yaml:"body"`
	Branch   string        `json:"branch" yaml:"branch"`
	Platform slug.Platform `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// NewCommand creates the pr command.
func NewCommand(app application.Application) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:     "pr <id|key>",
		GroupID: "workflow",
		Short:   "Print a pull request title and body for an issue",
		Long: `PR prints a pull request title and body for a stored issue. The title
is prefixed with the tracker key and the body closes the local issue.`,
		Example: `  beadsync pr PROJ-123
  beadsync pr bd-a1b2 -o json --remote "$(git remote get-url origin)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			record, err := client.Find(args[0])
			if err != nil {
				return err
			}

			desc := Description{
				Title:  slug.PRTitle(record),
				Body:   slug.PRBody(record),
				Branch: slug.Branch(record),
			}
			if remote != "" {
				desc.Platform = slug.DetectPlatform(remote)
			}

			w := cmd.OutOrStdout()
			if !format.IsTable() {
				return output.NewFormatter(format).Format(w, desc)
			}
			fmt.Fprintln(w, desc.Title)
			fmt.Fprintln(w)
			fmt.Fprint(w, desc.Body)
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "git remote URL used to detect the hosting platform")

	return cmd
}
