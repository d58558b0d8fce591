package issues

// Priority is an urgency ordinal from 0 (most urgent) to 4.
type Priority int

// Priority bounds and default.
const (
	PriorityHighest Priority = 0
	PriorityLowest  Priority = 4

	// DefaultPriority is used whenever a tracker supplies no usable priority.
	DefaultPriority Priority = 2
)

// Valid reports whether p lies within the ordinal range.
func (p Priority) Valid() bool {
	return p >= PriorityHighest && p <= PriorityLowest
}

// PriorityOf returns *p, or DefaultPriority when p is nil.
func PriorityOf(p *Priority) Priority {
	if p == nil {
		return DefaultPriority
	}
	return *p
}

// PriorityPtr returns a pointer to p.
func PriorityPtr(p Priority) *Priority {
	return &p
}

// IssueType is the local classification of an issue.
type IssueType string

// String returns the string representation of an IssueType.
func (t IssueType) String() string {
	return string(t)
}

// Issue types.
const (
	TypeBug     IssueType = "bug"
	TypeFeature IssueType = "feature"
	TypeEpic    IssueType = "epic"
	TypeTask    IssueType = "task"
)

// InferType derives an issue type from free-form labels for trackers that
// have no native type field. Unmatched label sets yield TypeTask.
func InferType(labels []string) IssueType {
	for _, l := range labels {
		switch normalizeLabel(l) {
		case "bug", "type::bug", "kind/bug":
			return TypeBug
		case "enhancement", "feature", "type::feature", "kind/feature":
			return TypeFeature
		case "epic":
			return TypeEpic
		}
	}
	return TypeTask
}
