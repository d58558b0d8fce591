// Package all registers every tracker adapter with the sources registry.
package all

import (
	// Register adapters.
	_ "github.com/agentstation/beadsync/internal/sources/example"
	_ "github.com/agentstation/beadsync/internal/sources/github"
	_ "github.com/agentstation/beadsync/internal/sources/gitlab"
	_ "github.com/agentstation/beadsync/internal/sources/jira"
	_ "github.com/agentstation/beadsync/internal/sources/linear"
)
