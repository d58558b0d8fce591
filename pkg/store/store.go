// Package store persists local issue records and sync provenance.
//
// A store is a directory holding:
//
//	issues.jsonl    one LocalRecord per line, rewritten in full on every save
//	metadata.json   SyncMetadata of the last run, overwritten each run
//	sync-log.jsonl  optional append-only audit log of runs
//	.sync.lock      advisory lock held for the duration of a run
//
// Full rewrites go through a temporary file and a rename so an interrupted
// write never leaves a truncated store behind.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// Store is a handle on a store directory. It holds no open files.
type Store struct {
	dir string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for metadata and audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir: dir,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// IssuesPath returns the path of the record file.
func (s *Store) IssuesPath() string { return filepath.Join(s.dir, constants.IssuesFile) }

// MetadataPath returns the path of the metadata file.
func (s *Store) MetadataPath() string { return filepath.Join(s.dir, constants.MetadataFile) }

// AuditPath returns the path of the audit log.
func (s *Store) AuditPath() string { return filepath.Join(s.dir, constants.AuditLogFile) }

// LockPath returns the path of the run lock file.
func (s *Store) LockPath() string { return filepath.Join(s.dir, constants.LockFile) }

// Load reads the store at storePath and indexes it.
func Load(storePath string) (*Index, error) {
	return New(storePath).LoadIndex()
}

// LoadIndex reads every record once and builds the lookup index.
func (s *Store) LoadIndex() (*Index, error) {
	records, err := s.ReadRecords()
	if err != nil {
		return nil, err
	}
	return NewIndex(records), nil
}

// ReadRecords reads all records in file order. A missing file is an empty
// store. Blank lines are ignored; any malformed line fails the whole read
// so that a corrupt store is never silently rewritten.
func (s *Store) ReadRecords() ([]issues.LocalRecord, error) {
	path := s.IssuesPath()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return []issues.LocalRecord{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxStoreLineSize)

	var records []issues.LocalRecord
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var r issues.LocalRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, &errors.ParseError{
				Format:  "jsonl",
				File:    path,
				Line:    line,
				Message: "invalid JSON record",
				Err:     err,
			}
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if records == nil {
		records = []issues.LocalRecord{}
	}
	return records, nil
}

// WriteRecords replaces the record file with records, one JSON object per line.
func (s *Store) WriteRecords(records []issues.LocalRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return &errors.ParseError{Format: "jsonl", File: s.IssuesPath(), Message: "encode record " + r.ID, Err: err}
		}
	}
	return s.writeFile(s.IssuesPath(), &buf)
}

func (s *Store) writeFile(path string, data *bytes.Buffer) error {
	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}
	if err := atomic.WriteFile(path, data); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
