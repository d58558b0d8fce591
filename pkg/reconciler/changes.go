package reconciler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/agentstation/beadsync/pkg/issues"
)

// ChangeType represents the outcome for one incoming issue.
type ChangeType string

const (
	// ChangeTypeCreate indicates a record was created.
	ChangeTypeCreate ChangeType = "create"
	// ChangeTypeUpdate indicates a record was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeSkip indicates a record was left untouched.
	ChangeTypeSkip ChangeType = "skip"
)

// FieldChange represents a change to a single mutable field.
type FieldChange struct {
	Field    string // JSON name of the field
	OldValue string // Previous value (string representation)
	NewValue string // New value (string representation)
	Stat     string // "+ins -del" character counts, set for description changes
}

// String renders the change on one line.
func (fc FieldChange) String() string {
	if fc.Stat != "" {
		return fmt.Sprintf("%s: %s", fc.Field, fc.Stat)
	}
	return fmt.Sprintf("%s: %q -> %q", fc.Field, fc.OldValue, fc.NewValue)
}

// Diff compares the tracker-derived fields of an existing record with a
// normalized incoming issue. The local id, local status and timestamps are
// never compared.
func Diff(existing issues.LocalRecord, incoming issues.CanonicalIssue) []FieldChange {
	var changes []FieldChange
	add := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
		}
	}

	add("title", existing.Title, incoming.Title)
	if existing.Description != incoming.Description {
		changes = append(changes, FieldChange{
			Field:    "description",
			OldValue: existing.Description,
			NewValue: incoming.Description,
			Stat:     diffStat(existing.Description, incoming.Description),
		})
	}
	add("priority", strconv.Itoa(int(existing.Priority)), strconv.Itoa(int(issues.PriorityOf(incoming.Priority))))
	add("issue_type", existing.Type.String(), incoming.Type.String())
	add("assignee", existing.Assignee, incoming.Assignee)
	add("tracker_status", existing.TrackerStatus, incoming.Status)
	if !issues.SameLabels(existing.Labels, incoming.Labels) {
		changes = append(changes, FieldChange{
			Field:    "labels",
			OldValue: strings.Join(issues.NormalizeLabels(existing.Labels), ","),
			NewValue: strings.Join(incoming.Labels, ","),
		})
	}
	// Records written before source tracking are adopted on first match.
	add("source", existing.Source.String(), incoming.Source.String())
	add("source_key", existing.SourceKey, incoming.SourceKey)

	return changes
}

// apply returns existing with the incoming tracker-derived fields copied in.
func apply(existing issues.LocalRecord, incoming issues.CanonicalIssue) issues.LocalRecord {
	out := existing.Clone()
	out.Title = incoming.Title
	out.Description = incoming.Description
	out.Priority = issues.PriorityOf(incoming.Priority)
	out.Type = incoming.Type
	out.Assignee = incoming.Assignee
	out.TrackerStatus = incoming.Status
	out.Labels = append([]string(nil), incoming.Labels...)
	out.Source = incoming.Source
	out.SourceKey = incoming.SourceKey
	return out
}

func diffStat(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	ins, del := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			ins += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			del += len([]rune(d.Text))
		}
	}
	return fmt.Sprintf("+%d -%d", ins, del)
}
