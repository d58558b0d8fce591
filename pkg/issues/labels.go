package issues

import (
	"slices"
	"strings"
)

// MarkerLabel tags every record created or refreshed by a sync run.
const MarkerLabel = "synced"

// ComponentLabelPrefix prefixes labels derived from tracker components.
const ComponentLabelPrefix = "component-"

func normalizeLabel(l string) string {
	return strings.ToLower(strings.TrimSpace(l))
}

// NormalizeLabels trims, de-duplicates and sorts labels. Empty labels are dropped.
func NormalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SameLabels reports whether a and b contain the same set of labels.
func SameLabels(a, b []string) bool {
	return slices.Equal(NormalizeLabels(a), NormalizeLabels(b))
}

// HasLabel reports whether labels contains label.
func HasLabel(labels []string, label string) bool {
	return slices.Contains(labels, label)
}

// WithLabels returns labels plus extra, normalized.
func WithLabels(labels []string, extra ...string) []string {
	all := make([]string, 0, len(labels)+len(extra))
	all = append(all, labels...)
	all = append(all, extra...)
	return NormalizeLabels(all)
}
