package beadsync

import (
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// Compile-time interface check to ensure proper implementation.
var _ Reader = (*client)(nil)

// Reader gives read access to the local store.
type Reader interface {
	// Status summarizes the store and its last sync.
	Status() (*Status, error)

	// Records returns every stored record in store order.
	Records() ([]issues.LocalRecord, error)

	// Find resolves a local id or tracker key to a record.
	Find(ref string) (issues.LocalRecord, error)
}

// Status describes a store.
type Status struct {
	StorePath string                `json:"store" yaml:"store"`
	Metadata  *issues.SyncMetadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"` // nil before the first sync
	Records   int                   `json:"records" yaml:"records"`
	BySource  map[issues.Source]int `json:"by_source" yaml:"by_source"`
}

// Status reads the metadata and counts the records per tracker.
func (c *client) Status() (*Status, error) {
	index, err := c.store.LoadIndex()
	if err != nil {
		return nil, err
	}

	st := &Status{
		StorePath: c.store.Dir(),
		Records:   index.Len(),
		BySource:  index.CountBySource(),
	}

	meta, err := c.store.ReadMetadata()
	switch {
	case err == nil:
		st.Metadata = &meta
	case errors.IsNotFound(err):
	default:
		return nil, err
	}
	return st, nil
}

// Records returns every stored record in store order.
func (c *client) Records() ([]issues.LocalRecord, error) {
	index, err := c.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	return index.Records(), nil
}

// Find resolves a local id or tracker key.
func (c *client) Find(ref string) (issues.LocalRecord, error) {
	index, err := c.store.LoadIndex()
	if err != nil {
		return issues.LocalRecord{}, err
	}
	record, ok := index.Find(ref)
	if !ok {
		return issues.LocalRecord{}, &errors.NotFoundError{Resource: "issue", ID: ref}
	}
	return record, nil
}
