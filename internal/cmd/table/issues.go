// Package table converts store and tracker data into rows for CLI tables.
package table

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/beadsync/internal/cmd/emoji"
	"github.com/agentstation/beadsync/internal/config"
	"github.com/agentstation/beadsync/pkg/issues"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxTitle bounds the title column in narrow tables.
const maxTitle = 60

// RecordsToTableData converts local records to table format.
func RecordsToTableData(records []issues.LocalRecord, wide bool) Data {
	headers := []string{"ID", "Key", "Title", "Status", "Priority", "Type"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Tracker Status", "Assignee", "Labels", "Updated")
		align = append(align, AlignLeft, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		title := r.Title
		if !wide {
			title = Truncate(title, maxTitle)
		}
		row := []string{
			r.ID,
			orDash(r.SourceKey),
			title,
			r.Status.String(),
			FormatPriority(r.Priority),
			r.Type.String(),
		}
		if wide {
			row = append(row,
				orDash(r.TrackerStatus),
				orDash(r.Assignee),
				orDash(strings.Join(r.Labels, ",")),
				FormatTime(r.UpdatedAt),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// IssuesToTableData converts fetched canonical issues to table format.
func IssuesToTableData(in []issues.CanonicalIssue) Data {
	headers := []string{"Source", "Key", "Title", "Status", "Priority", "Type", "Assignee"}
	rows := make([][]string, 0, len(in))
	for _, ci := range in {
		rows = append(rows, []string{
			ci.Source.String(),
			ci.SourceKey,
			Truncate(ci.Title, maxTitle),
			orDash(ci.Status),
			FormatPriority(issues.PriorityOf(ci.Priority)),
			ci.Type.String(),
			orDash(ci.Assignee),
		})
	}
	return Data{Headers: headers, Rows: rows}
}

// StoreStatus is the subset of a store's status shown in tables.
type StoreStatus struct {
	StorePath string
	Metadata  *issues.SyncMetadata
	Records   int
	BySource  map[issues.Source]int
}

// StatusToTableData converts a store status to a key/value table.
func StatusToTableData(st StoreStatus) Data {
	rows := [][]string{
		{"Store", st.StorePath},
		{"Records", strconv.Itoa(st.Records)},
	}
	if st.Metadata != nil {
		rows = append(rows,
			[]string{"Last Sync", FormatTime(st.Metadata.LastSync)},
			[]string{"Last Source", st.Metadata.Source.String()},
			[]string{"Last Issue Count", strconv.Itoa(st.Metadata.IssueCount)},
		)
	} else {
		rows = append(rows, []string{"Last Sync", "never"})
	}

	sources := make([]string, 0, len(st.BySource))
	for src := range st.BySource {
		sources = append(sources, src.String())
	}
	sort.Strings(sources)
	for _, src := range sources {
		label := src
		if label == "" {
			label = "(untracked)"
		}
		rows = append(rows, []string{"Records from " + label, strconv.Itoa(st.BySource[issues.Source(src)])})
	}

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// CredentialsToTableData shows which trackers are ready to sync.
func CredentialsToTableData(statuses []config.Status) Data {
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		state := emoji.Success + " configured"
		detail := "-"
		if !st.Ready {
			state = emoji.Error + " missing"
			detail = strings.Join(st.Missing, ", ")
		}
		rows = append(rows, []string{st.Source.String(), state, detail})
	}
	return Data{Headers: []string{"Source", "Credentials", "Missing"}, Rows: rows}
}

// FormatPriority renders a priority as P0..P4.
func FormatPriority(p issues.Priority) string {
	return "P" + strconv.Itoa(int(p))
}

// FormatTime renders a timestamp in UTC, or a dash for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
