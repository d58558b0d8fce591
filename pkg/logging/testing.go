package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// Entry is one decoded JSON log line.
type Entry map[string]any

// Level returns the entry's level field.
func (e Entry) Level() string { return e.Str(zerolog.LevelFieldName) }

// Message returns the entry's message field.
func (e Entry) Message() string { return e.Str(zerolog.MessageFieldName) }

// Str returns a string field, or "" when absent or not a string.
func (e Entry) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

// Recorder collects JSON log lines at every level for inspection in tests.
type Recorder struct {
	Logger zerolog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewRecorder returns a Recorder whose Logger writes into it. zerolog's
// global level is lowered to trace until the test ends.
func NewRecorder(t testing.TB) *Recorder {
	t.Helper()
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	r := &Recorder{}
	r.Logger = zerolog.New(r).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return r
}

// RecordDefault installs a Recorder as the default logger until the test
// ends. Code that logs through FromContext without a logger in its context
// lands here too.
func RecordDefault(t testing.TB) *Recorder {
	t.Helper()
	original := defaultLogger
	r := NewRecorder(t)
	SetDefault(r.Logger)
	t.Cleanup(func() { SetDefault(original) })
	return r
}

func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// Output returns everything written so far.
func (r *Recorder) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// Entries decodes the recorded lines. Lines that are not JSON are skipped.
func (r *Recorder) Entries() []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewBufferString(r.Output()))
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Messages returns the message of every recorded entry, in order.
func (r *Recorder) Messages() []string {
	entries := r.Entries()
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, e.Message())
	}
	return msgs
}

// Find returns the first entry with the given level and message.
func (r *Recorder) Find(level zerolog.Level, msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Level() == level.String() && e.Message() == msg {
			return e, true
		}
	}
	return nil, false
}
