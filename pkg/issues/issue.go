package issues

import (
	"strings"

	"github.com/agentstation/beadsync/pkg/errors"
)

// CanonicalIssue is the tracker independent form every adapter produces.
type CanonicalIssue struct {
	SourceKey   string    `json:"source_key" yaml:"source_key"`                       // Tracker-native key (PROJ-123, gh-42, gl-7, ENG-9)
	Title       string    `json:"title" yaml:"title"`                                 // Issue summary
	Description string    `json:"description,omitempty" yaml:"description,omitempty"` // Plain text body, may be empty
	Status      string    `json:"status,omitempty" yaml:"status,omitempty"`           // Tracker status vocabulary, not remapped
	Priority    *Priority `json:"priority,omitempty" yaml:"priority,omitempty"`       // nil means DefaultPriority
	Type        IssueType `json:"issue_type,omitempty" yaml:"issue_type,omitempty"`   // Defaults to task
	Labels      []string  `json:"labels,omitempty" yaml:"labels,omitempty"`           // Free-form tags plus key and marker labels
	Assignee    string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`       // Empty when unassigned
	Source      Source    `json:"source" yaml:"source"`                               // Originating tracker
}

// Normalize returns a copy of the issue with surrounding whitespace trimmed,
// the tracker-key and marker labels attached, labels de-duplicated and
// a default type filled in. Priority is left as supplied.
func (ci CanonicalIssue) Normalize() CanonicalIssue {
	out := ci
	out.SourceKey = strings.TrimSpace(ci.SourceKey)
	out.Title = strings.TrimSpace(ci.Title)
	out.Assignee = strings.TrimSpace(ci.Assignee)
	if out.Type == "" {
		out.Type = TypeTask
	}
	extra := []string{MarkerLabel}
	if out.SourceKey != "" {
		extra = append(extra, out.SourceKey)
	}
	out.Labels = WithLabels(ci.Labels, extra...)
	if ci.Priority != nil {
		p := *ci.Priority
		out.Priority = &p
	}
	return out
}

// Validate checks the invariants reconciliation depends on.
func (ci CanonicalIssue) Validate() error {
	if strings.TrimSpace(ci.SourceKey) == "" {
		return errors.NewValidationError("source_key", ci.SourceKey, "must not be empty")
	}
	if !ci.Source.Valid() {
		return errors.NewValidationError("source", ci.Source, "unknown source")
	}
	if !ci.Source.MatchesKey(ci.SourceKey) {
		return errors.NewValidationError("source_key", ci.SourceKey, "does not match the "+ci.Source.String()+" key format")
	}
	if ci.Priority != nil && !ci.Priority.Valid() {
		return errors.NewValidationError("priority", *ci.Priority, "must be between 0 and 4")
	}
	if !HasLabel(ci.Labels, ci.SourceKey) {
		return errors.NewValidationError("labels", ci.Labels, "missing tracker-key label "+ci.SourceKey)
	}
	return nil
}
