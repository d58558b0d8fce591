package store

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// WriteMetadata overwrites the metadata file of the store at storePath.
func WriteMetadata(storePath string, source issues.Source, count int) error {
	_, err := New(storePath).WriteMetadata(source, count)
	return err
}

// WriteMetadata overwrites the metadata file with the current time, source
// and issue count, and returns what it wrote.
func (s *Store) WriteMetadata(source issues.Source, count int) (issues.SyncMetadata, error) {
	meta := issues.SyncMetadata{
		LastSync:   s.now(),
		Source:     source,
		IssueCount: count,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return meta, errors.WrapParse("json", s.MetadataPath(), err)
	}
	data = append(data, '\n')
	return meta, s.writeFile(s.MetadataPath(), bytes.NewBuffer(data))
}

// ReadMetadata returns the metadata of the last run. A store that has never
// been synced yields a NotFoundError.
func (s *Store) ReadMetadata() (issues.SyncMetadata, error) {
	var meta issues.SyncMetadata
	data, err := os.ReadFile(s.MetadataPath())
	if os.IsNotExist(err) {
		return meta, errors.NewNotFoundError("metadata", s.MetadataPath())
	}
	if err != nil {
		return meta, errors.WrapIO("read", s.MetadataPath(), err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, errors.WrapParse("json", s.MetadataPath(), err)
	}
	return meta, nil
}
