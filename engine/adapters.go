// Package engine implements the Engine Orchestrator (spec §2 item 6): the
// lifecycle-aware wrapper around the pure evaluator that initializes
// adapters, runs the plugin registry's hooks, consults the result cache,
// records audit entries, emits notifications, and isolates adapter
// failures from evaluator correctness (spec §4.6, §4.7).
package engine

import (
	"context"
	"time"
)

// CacheAdapter backs rule-set hydration and result memoization (spec
// §4.6). Read failures are treated as cache misses; write failures are
// swallowed once retryAdapter gives up. Neither kind of cache failure is
// logged by the orchestrator.
type CacheAdapter interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// AuditEntry is one record an AuditAdapter persists.
type AuditEntry struct {
	ID          string
	Timestamp   time.Time
	RuleSetID   string
	RuleSetName string
	Result      any // *types.ExecutionResult, kept as any to avoid an import cycle with audit's consumers
	Metadata    map[string]string
}

// AuditFilter narrows an AuditAdapter.Query call.
type AuditFilter struct {
	RuleSetID string
	Since     time.Time
	Until     time.Time
}

// AuditAdapter records one entry per evaluated execution when
// Config.AuditEnabled is set (spec §4.6). An Execute call answered from the
// result cache records no entry. Query is optional — callers should
// type-assert for it.
type AuditAdapter interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditQuerier is implemented by AuditAdapters that support querying past
// entries (the default in-memory one does).
type AuditQuerier interface {
	Query(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)
}

// NotificationEvent is emitted after an evaluated execution: "info" when it
// fired at least one rule, "error" on evaluator failure (spec §4.6). An
// Execute call answered from the result cache emits no event.
type NotificationEvent struct {
	Type      string // "info" | "error"
	RuleSetID string
	Message   string
	Result    any
	Timestamp time.Time
}

// NotificationAdapter fans out NotificationEvents. Failures are swallowed.
type NotificationAdapter interface {
	Notify(ctx context.Context, event NotificationEvent) error
}

// DataSourceAdapter hydrates facts from an external source. The evaluator
// never calls it directly; it exists for upstream callers assembling
// input before Execute (spec §4.6).
type DataSourceAdapter interface {
	FetchData(ctx context.Context, factContext map[string]any, options map[string]any) (map[string]any, error)
}

// Initializer is an optional lifecycle hook any adapter may implement; run
// during Engine.Init.
type Initializer interface {
	Init(ctx context.Context) error
}

// Destroyer is an optional lifecycle hook any adapter may implement; run
// during Engine.Shutdown.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// AdapterKind names the four adapter slots RegisterAdapter can replace.
type AdapterKind string

const (
	AdapterKindCache        AdapterKind = "cache"
	AdapterKindAudit        AdapterKind = "audit"
	AdapterKindNotification AdapterKind = "notification"
	AdapterKindDataSource   AdapterKind = "dataSource"
)
