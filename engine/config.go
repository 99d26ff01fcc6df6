package engine

import (
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruleforge/ruleforge/registry"
)

// Options tunes the orchestrator's caching/auditing behavior (spec §6).
type Options struct {
	CacheRuleSets   bool
	CacheRuleSetTTL time.Duration
	CacheResults    bool
	CacheResultTTL  time.Duration
	AuditEnabled    bool
	Metadata        map[string]string
}

// Config is the single plain struct handed to New — no file format, no env
// vars, matching spec §6's "config loading is out of scope" while still
// giving the orchestrator typed configuration (SPEC_FULL.md §2a).
type Config struct {
	Plugins []*registry.Plugin

	Cache        CacheAdapter
	Audit        AuditAdapter
	Notification NotificationAdapter
	DataSource   DataSourceAdapter

	Options Options

	// TracerProvider/MeterProvider are optional instrumentation hooks for
	// Execute's own lifecycle (SPEC_FULL.md §6); the global noop providers
	// are used when left nil.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}
