package issues

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"
)

// Status is the local workflow state of a record. It is owned by local
// tooling and never rewritten by a sync run.
type Status string

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Local workflow states.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusClosed     Status = "closed"
)

// LocalRecord is the persisted form of an issue, one per line in the store.
type LocalRecord struct {
	ID            string    `json:"id" yaml:"id"`                                             // Local id, stable once created
	Title         string    `json:"title" yaml:"title"`                                       // Mirrors the tracker title
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`       // Mirrors the tracker body
	Status        Status    `json:"status" yaml:"status"`                                     // Local workflow state
	Priority      Priority  `json:"priority" yaml:"priority"`                                 // Always present, never omitted
	Type          IssueType `json:"issue_type" yaml:"issue_type"`                             // bug, feature, epic or task
	Assignee      string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`             // Tracker assignee
	Labels        []string  `json:"labels" yaml:"labels"`                                     // Includes tracker-key and marker labels
	Source        Source    `json:"source,omitempty" yaml:"source,omitempty"`                 // Originating tracker
	SourceKey     string    `json:"source_key,omitempty" yaml:"source_key,omitempty"`         // Tracker-native key
	TrackerStatus string    `json:"tracker_status,omitempty" yaml:"tracker_status,omitempty"` // Status in the tracker's own vocabulary
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`

	// Extra holds fields written by other tools sharing the store. They are
	// carried through a sync run unchanged.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// recordFields lists the JSON keys owned by LocalRecord.
var recordFields = []string{
	"id", "title", "description", "status", "priority", "issue_type", "assignee",
	"labels", "source", "source_key", "tracker_status", "created_at", "updated_at",
}

// TrackerKey returns the key the record is matched on. A stored source key
// always wins, so a free-form label shaped like a key (ABC-1, Q3-2024) can
// never shadow it. Records without one fall back to the first label
// matching their source's key pattern, or any tracker's pattern when the
// source is unknown.
func (r LocalRecord) TrackerKey() (string, bool) {
	if r.SourceKey != "" {
		return r.SourceKey, true
	}
	if r.Source.Valid() {
		return r.Source.TrackerKey(r.Labels)
	}
	for _, src := range Sources() {
		if key, ok := src.TrackerKey(r.Labels); ok {
			return key, true
		}
	}
	return "", false
}

// Canonical returns the tracker-derived part of the record.
func (r LocalRecord) Canonical() CanonicalIssue {
	p := r.Priority
	return CanonicalIssue{
		SourceKey:   r.SourceKey,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.TrackerStatus,
		Priority:    &p,
		Type:        r.Type,
		Labels:      slices.Clone(r.Labels),
		Assignee:    r.Assignee,
		Source:      r.Source,
	}
}

// Clone returns a deep copy of the record.
func (r LocalRecord) Clone() LocalRecord {
	out := r
	out.Labels = slices.Clone(r.Labels)
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = slices.Clone(v)
		}
	}
	return out
}

// UnmarshalJSON decodes a record and keeps unknown keys in Extra.
func (r *LocalRecord) UnmarshalJSON(data []byte) error {
	type plain LocalRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range recordFields {
		delete(all, k)
	}
	if len(all) > 0 {
		p.Extra = all
	} else {
		p.Extra = nil
	}

	*r = LocalRecord(p)
	return nil
}

// MarshalJSON encodes the known fields first, followed by Extra keys in
// sorted order.
func (r LocalRecord) MarshalJSON() ([]byte, error) {
	type plain LocalRecord
	p := plain(r)
	if p.Labels == nil {
		p.Labels = []string{}
	}
	data, err := json.Marshal(p)
	if err != nil || len(r.Extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if !slices.Contains(recordFields, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(r.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
