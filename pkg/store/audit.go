package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// AuditEntry is one line of the audit log, describing a single sync run.
type AuditEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Source    issues.Source `json:"source"`
	Fetched   int           `json:"fetched"`
	Created   []string      `json:"created,omitempty"`
	Updated   []AuditChange `json:"updated,omitempty"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
}

// AuditChange is an RFC 7386 merge patch turning the previous version of a
// record into the new one.
type AuditChange struct {
	ID        string          `json:"id"`
	SourceKey string          `json:"source_key"`
	Patch     json.RawMessage `json:"patch"`
}

// MergePatch computes the merge patch between two versions of a record.
func MergePatch(before, after issues.LocalRecord) (json.RawMessage, error) {
	from, err := json.Marshal(before)
	if err != nil {
		return nil, err
	}
	to, err := json.Marshal(after)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(from, to)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return patch, nil
}

// ApplyMergePatch replays a patch produced by MergePatch onto a record.
func ApplyMergePatch(record issues.LocalRecord, patch json.RawMessage) (issues.LocalRecord, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return record, err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return record, errors.WrapParse("json", "", err)
	}
	var out issues.LocalRecord
	if err := json.Unmarshal(merged, &out); err != nil {
		return record, errors.WrapParse("json", "", err)
	}
	return out, nil
}

// AppendAudit appends entry to the audit log. A zero timestamp is filled in
// from the store clock.
func (s *Store) AppendAudit(entry AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return errors.WrapParse("json", s.AuditPath(), err)
	}

	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}
	f, err := os.OpenFile(s.AuditPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("open", s.AuditPath(), err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", s.AuditPath(), err)
	}
	return errors.WrapIO("close", s.AuditPath(), f.Close())
}

// ReadAudit returns the audit log entries, oldest first.
func (s *Store) ReadAudit() ([]AuditEntry, error) {
	f, err := os.Open(s.AuditPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", s.AuditPath(), err)
	}
	defer func() { _ = f.Close() }()

	var entries []AuditEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxStoreLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var e AuditEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, &errors.ParseError{Format: "jsonl", File: s.AuditPath(), Line: line, Message: "invalid audit entry", Err: err}
		}
		entries = append(entries, e)
	}
	return entries, errors.WrapIO("read", s.AuditPath(), scanner.Err())
}
