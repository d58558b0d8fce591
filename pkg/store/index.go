package store

import (
	"github.com/agentstation/beadsync/pkg/issues"
)

type sourceKey struct {
	source issues.Source
	key    string
}

// Index is an in-memory view of the store keyed by tracker key. It is built
// once per run; reconciliation never goes back to disk per issue.
type Index struct {
	records  []issues.LocalRecord
	byKey    map[string]int
	bySource map[sourceKey]int
	ids      map[string]int
}

// NewIndex indexes records. The first record seen for a key wins.
func NewIndex(records []issues.LocalRecord) *Index {
	ix := &Index{
		records:  records,
		byKey:    make(map[string]int, len(records)),
		bySource: make(map[sourceKey]int, len(records)),
		ids:      make(map[string]int, len(records)),
	}
	for i, r := range records {
		if _, seen := ix.ids[r.ID]; !seen {
			ix.ids[r.ID] = i
		}
		key, ok := r.TrackerKey()
		if !ok {
			continue
		}
		if _, seen := ix.byKey[key]; !seen {
			ix.byKey[key] = i
		}
		sk := sourceKey{r.Source, key}
		if _, seen := ix.bySource[sk]; !seen {
			ix.bySource[sk] = i
		}
	}
	return ix
}

// Lookup returns the record whose tracker key is key, from any source.
func (ix *Index) Lookup(key string) (issues.LocalRecord, bool) {
	i, ok := ix.byKey[key]
	if !ok {
		return issues.LocalRecord{}, false
	}
	return ix.records[i], true
}

// LookupSource returns the record for key within source. Records that carry
// no source are adopted by the first source that asks for their key.
func (ix *Index) LookupSource(source issues.Source, key string) (issues.LocalRecord, bool) {
	if i, ok := ix.bySource[sourceKey{source, key}]; ok {
		return ix.records[i], true
	}
	if i, ok := ix.bySource[sourceKey{"", key}]; ok {
		return ix.records[i], true
	}
	return issues.LocalRecord{}, false
}

// HasID reports whether a record with the local id exists.
func (ix *Index) HasID(id string) bool {
	_, ok := ix.ids[id]
	return ok
}

// Find resolves a local id or a tracker key to a record.
func (ix *Index) Find(ref string) (issues.LocalRecord, bool) {
	if i, ok := ix.ids[ref]; ok {
		return ix.records[i], true
	}
	return ix.Lookup(ref)
}

// Len returns the number of records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns the records in store order. The slice is a copy.
func (ix *Index) Records() []issues.LocalRecord {
	out := make([]issues.LocalRecord, len(ix.records))
	copy(out, ix.records)
	return out
}

// CountBySource returns the number of records per source. Records without
// a source are counted under the empty source.
func (ix *Index) CountBySource() map[issues.Source]int {
	counts := make(map[issues.Source]int)
	for _, r := range ix.records {
		counts[r.Source]++
	}
	return counts
}
