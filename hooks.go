package beadsync

import (
	"sync"

	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/reconciler"
)

// Hook function types for record events
type (
	// RecordCreatedHook is called when a sync run adds a record to the store
	RecordCreatedHook func(record issues.LocalRecord)

	// RecordUpdatedHook is called when a sync run refreshes a record
	RecordUpdatedHook func(old, new issues.LocalRecord)
)

// Hooks registers callbacks fired after a sync run has been persisted.
// Dry runs fire no hooks.
type Hooks interface {
	OnRecordCreated(fn RecordCreatedHook)
	OnRecordUpdated(fn RecordUpdatedHook)
}

// hooks manages event callbacks for store changes
type hooks struct {
	mu              sync.RWMutex
	onRecordCreated []RecordCreatedHook
	onRecordUpdated []RecordUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnRecordCreated registers a callback for when records are created
func (c *client) OnRecordCreated(fn RecordCreatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onRecordCreated = append(c.hooks.onRecordCreated, fn)
}

// OnRecordUpdated registers a callback for when records are updated
func (c *client) OnRecordUpdated(fn RecordUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onRecordUpdated = append(c.hooks.onRecordUpdated, fn)
}

// trigger fires the registered hooks for a persisted reconciler result
func (h *hooks) trigger(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, record := range result.Created {
		for _, fn := range h.onRecordCreated {
			fn(record)
		}
	}
	for _, u := range result.Updated {
		for _, fn := range h.onRecordUpdated {
			fn(u.Before, u.After)
		}
	}
}
