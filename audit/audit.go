// Package audit provides the default AuditAdapter: a bounded in-memory
// log of entries (whose ids the engine assigns from github.com/google/uuid),
// queryable by rule-set id and time range (SPEC_FULL.md §4.6). Production callers are expected
// to supply their own persistence-backed adapter; this one exists so the
// engine has something to exercise out of the box.
package audit

import (
	"context"
	"sync"

	"github.com/ruleforge/ruleforge/engine"
)

// MemoryAudit is a bounded, in-memory AuditAdapter + AuditQuerier.
type MemoryAudit struct {
	mu       sync.Mutex
	capacity int
	entries  []engine.AuditEntry
}

// NewMemoryAudit builds a MemoryAudit retaining at most capacity entries,
// oldest evicted first.
func NewMemoryAudit(capacity int) *MemoryAudit {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryAudit{capacity: capacity}
}

// Record appends entry, evicting the oldest if at capacity.
func (a *MemoryAudit) Record(_ context.Context, entry engine.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, entry)
	if overflow := len(a.entries) - a.capacity; overflow > 0 {
		a.entries = a.entries[overflow:]
	}
	return nil
}

// Query returns entries matching filter.RuleSetID (when set) and falling
// within [Since, Until) (when either bound is non-zero), oldest first.
func (a *MemoryAudit) Query(_ context.Context, filter engine.AuditFilter) ([]engine.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]engine.AuditEntry, 0, len(a.entries))
	for _, e := range a.entries {
		if filter.RuleSetID != "" && e.RuleSetID != filter.RuleSetID {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && !e.Timestamp.Before(filter.Until) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
