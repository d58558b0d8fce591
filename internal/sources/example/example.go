// Package example provides an offline source that returns a fixed pair of
// issues. It needs no credentials and is used for demos and smoke tests.
package example

import (
	"context"

	"github.com/agentstation/beadsync/internal/sources"
	"github.com/agentstation/beadsync/pkg/issues"
)

func init() {
	sources.Register(issues.SourceExample, func(sources.Config) (sources.Source, error) {
		return &Source{}, nil
	})
}

// Source serves the built-in example issues.
type Source struct{}

// ID implements sources.Source.
func (s *Source) ID() issues.Source {
	return issues.SourceExample
}

// Fetch returns the example issues, honoring context cancellation.
func (s *Source) Fetch(ctx context.Context, _ issues.Query) ([]issues.CanonicalIssue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Issues(), nil
}

// Issues returns fresh copies of the example issues.
func Issues() []issues.CanonicalIssue {
	raw := []issues.CanonicalIssue{
		{
			SourceKey:   "EXAMPLE-123",
			Title:       "Implement user authentication",
			Description: "Add login and logout endpoints backed by session cookies.",
			Status:      "To Do",
			Priority:    issues.PriorityPtr(1),
			Type:        issues.TypeFeature,
			Labels:      []string{"backend", "security"},
			Source:      issues.SourceExample,
		},
		{
			SourceKey:   "EXAMPLE-124",
			Title:       "Fix memory leak in image cache",
			Description: "Cached thumbnails are never evicted after the gallery closes.",
			Status:      "In Progress",
			Priority:    issues.PriorityPtr(0),
			Type:        issues.TypeBug,
			Labels:      []string{"performance"},
			Assignee:    "example-user",
			Source:      issues.SourceExample,
		},
	}

	out := make([]issues.CanonicalIssue, len(raw))
	for i, ci := range raw {
		out[i] = ci.Normalize()
	}
	return out
}
