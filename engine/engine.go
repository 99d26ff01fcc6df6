package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruleforge/ruleforge/compat"
	"github.com/ruleforge/ruleforge/evaluator"
	"github.com/ruleforge/ruleforge/fingerprint"
	"github.com/ruleforge/ruleforge/registry"
	"github.com/ruleforge/ruleforge/types"
	"github.com/ruleforge/ruleforge/xerr"
)

// RuleSetFetcher resolves a rule-set id to a RuleSet, typically backed by a
// persistence layer the engine deliberately treats as an external
// collaborator (spec §1).
type RuleSetFetcher func(ctx context.Context, id string) (*types.RuleSet, error)

type engineMetrics struct {
	activeEvaluations metric.Int64UpDownCounter
	executionDuration metric.Float64Histogram
	executionCount    metric.Int64Counter
}

// Engine is the lifecycle-aware orchestrator wrapping the pure evaluator
// with caching, auditing, notification, and a shared Plugin Registry
// (spec §2 item 6).
type Engine struct {
	mu sync.Mutex

	registry *registry.Registry
	cfg      Config

	initialized bool
	shutdown    bool

	tracer  trace.Tracer
	metrics *engineMetrics
}

// New constructs an Engine. Plugins named in cfg.Plugins are registered
// immediately (a plugin's onRegister runs at register time, per spec
// §4.6, not deferred to Init).
func New(cfg Config) (*Engine, error) {
	e := &Engine{
		registry: registry.New(),
		cfg:      cfg,
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	e.tracer = tp.Tracer("github.com/ruleforge/ruleforge/engine")

	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter("github.com/ruleforge/ruleforge/engine")
	active, err := meter.Int64UpDownCounter("ruleforge.active_evaluations")
	if err != nil {
		return nil, fmt.Errorf("engine: create active evaluations counter: %w", err)
	}
	duration, err := meter.Float64Histogram("ruleforge.execution_duration_ms")
	if err != nil {
		return nil, fmt.Errorf("engine: create execution duration histogram: %w", err)
	}
	count, err := meter.Int64Counter("ruleforge.execution_count")
	if err != nil {
		return nil, fmt.Errorf("engine: create execution count counter: %w", err)
	}
	e.metrics = &engineMetrics{activeEvaluations: active, executionDuration: duration, executionCount: count}

	for _, p := range cfg.Plugins {
		if err := e.registry.RegisterPlugin(p); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Init starts every configured adapter that implements Initializer.
// Calling Init twice, or after Shutdown, is a ConfigurationError.
func (e *Engine) Init(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shutdown {
		return xerr.NewConfigurationError("engine: cannot init after shutdown")
	}
	if e.initialized {
		return xerr.NewConfigurationError("engine: already initialized")
	}

	for _, adapter := range e.adapters() {
		if initializer, ok := adapter.(Initializer); ok {
			if err := initializer.Init(ctx); err != nil {
				return xerr.NewConfigurationError("engine: adapter init failed: %v", err)
			}
		}
	}

	e.initialized = true
	return nil
}

// Shutdown destroys every configured adapter that implements Destroyer and
// every registered plugin's OnDestroy.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shutdown {
		return xerr.NewConfigurationError("engine: already shut down")
	}

	for _, adapter := range e.adapters() {
		if destroyer, ok := adapter.(Destroyer); ok {
			_ = destroyer.Destroy(ctx) // shutdown best-effort; never blocks cleanup
		}
	}
	for _, name := range e.registry.PluginNames() {
		_ = e.registry.UnregisterPlugin(name)
	}

	e.shutdown = true
	return nil
}

func (e *Engine) adapters() []any {
	var out []any
	if e.cfg.Cache != nil {
		out = append(out, e.cfg.Cache)
	}
	if e.cfg.Audit != nil {
		out = append(out, e.cfg.Audit)
	}
	if e.cfg.Notification != nil {
		out = append(out, e.cfg.Notification)
	}
	if e.cfg.DataSource != nil {
		out = append(out, e.cfg.DataSource)
	}
	return out
}

// RegisterPlugin installs p on the shared registry at runtime.
func (e *Engine) RegisterPlugin(p *registry.Plugin) error {
	return e.registry.RegisterPlugin(p)
}

// UnregisterPlugin removes a previously registered plugin by name.
func (e *Engine) UnregisterPlugin(name string) error {
	return e.registry.UnregisterPlugin(name)
}

// RegisterAdapter swaps the adapter occupying kind. An unknown kind is a
// ConfigurationError.
func (e *Engine) RegisterAdapter(kind AdapterKind, adapter any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case AdapterKindCache:
		cache, ok := adapter.(CacheAdapter)
		if !ok {
			return xerr.NewConfigurationError("engine: adapter does not implement CacheAdapter")
		}
		e.cfg.Cache = cache
	case AdapterKindAudit:
		audit, ok := adapter.(AuditAdapter)
		if !ok {
			return xerr.NewConfigurationError("engine: adapter does not implement AuditAdapter")
		}
		e.cfg.Audit = audit
	case AdapterKindNotification:
		notifier, ok := adapter.(NotificationAdapter)
		if !ok {
			return xerr.NewConfigurationError("engine: adapter does not implement NotificationAdapter")
		}
		e.cfg.Notification = notifier
	case AdapterKindDataSource:
		source, ok := adapter.(DataSourceAdapter)
		if !ok {
			return xerr.NewConfigurationError("engine: adapter does not implement DataSourceAdapter")
		}
		e.cfg.DataSource = source
	default:
		return xerr.NewConfigurationError("engine: unknown adapter kind %q", kind)
	}
	return nil
}

// LoadRuleSet resolves a rule set by value or by id. A string id is
// resolved via the cache (when Options.CacheRuleSets) and otherwise via
// fetcher, which is required for any uncached id. The resolved set's
// EngineVersion constraint (if any) is checked against compat.EngineVersion
// before it is returned.
func (e *Engine) LoadRuleSet(ctx context.Context, idOrRuleSet any, fetcher RuleSetFetcher) (*types.RuleSet, error) {
	var rs *types.RuleSet

	switch v := idOrRuleSet.(type) {
	case *types.RuleSet:
		rs = v
	case types.RuleSet:
		rsCopy := v
		rs = &rsCopy
	case string:
		cacheKey := "ruleset:" + v
		if e.cfg.Options.CacheRuleSets && e.cfg.Cache != nil {
			if cached, found, err := e.cfg.Cache.Get(ctx, cacheKey); err == nil && found {
				if loaded, ok := cached.(*types.RuleSet); ok {
					rs = loaded
				}
			}
		}
		if rs == nil {
			if fetcher == nil {
				return nil, xerr.NewConfigurationError("engine: no fetcher supplied for uncached rule set id %q", v)
			}
			fetched, err := fetcher(ctx, v)
			if err != nil {
				return nil, xerr.NewConfigurationError("engine: fetch rule set %q failed: %v", v, err)
			}
			rs = fetched
			if e.cfg.Options.CacheRuleSets && e.cfg.Cache != nil {
				_ = retryAdapter(ctx, func() error {
					return e.cfg.Cache.Set(ctx, cacheKey, rs, e.cfg.Options.CacheRuleSetTTL)
				})
			}
		}
	default:
		return nil, xerr.NewConfigurationError("engine: loadRuleSet requires a *RuleSet, RuleSet, or string id, got %T", idOrRuleSet)
	}

	if err := rs.Validate(); err != nil {
		return nil, xerr.NewConfigurationError("engine: invalid rule set: %v", err)
	}
	if err := compat.Check(rs.EngineVersion); err != nil {
		return nil, err
	}

	return rs, nil
}

// Execute runs one evaluation against ruleSet, layering the result cache,
// audit log, and notifications around evaluator.ExecuteRuleSet. Evaluator
// failures are always represented in the returned ExecutionResult, never
// as an error return (spec §7); Execute's own error return is reserved for
// configuration-level problems (not initialized, bad EngineVersion gate).
func (e *Engine) Execute(ctx context.Context, ruleSet *types.RuleSet, input map[string]any) (*types.ExecutionResult, error) {
	e.mu.Lock()
	initialized, shutdown := e.initialized, e.shutdown
	e.mu.Unlock()
	if !initialized || shutdown {
		return nil, xerr.NewConfigurationError("engine: execute called before init or after shutdown")
	}

	if err := compat.Check(ruleSet.EngineVersion); err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "ruleforge.execute")
	defer span.End()

	attrs := metric.WithAttributes(attribute.String("ruleforge.ruleset_id", ruleSet.ID))
	e.metrics.activeEvaluations.Add(ctx, 1, attrs)
	defer e.metrics.activeEvaluations.Add(ctx, -1, attrs)

	var cacheKey string
	if e.cfg.Options.CacheResults && e.cfg.Cache != nil {
		fp, err := fingerprint.Of(input)
		if err == nil {
			cacheKey = fmt.Sprintf("result:%s:%s", ruleSet.ID, fp)
			if cached, found, err := e.cfg.Cache.Get(ctx, cacheKey); err == nil && found {
				if result, ok := cached.(*types.ExecutionResult); ok {
					return result, nil
				}
			}
		}
	}

	start := time.Now()
	result := evaluator.ExecuteRuleSet(ctx, e.registry, ruleSet, input)
	e.metrics.executionDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000.0, attrs)
	e.metrics.executionCount.Add(ctx, 1, attrs)

	if !result.Success {
		span.RecordError(fmt.Errorf("%s", result.Error))
	}

	if cacheKey != "" && result.Success {
		_ = retryAdapter(ctx, func() error {
			return e.cfg.Cache.Set(ctx, cacheKey, &result, e.cfg.Options.CacheResultTTL)
		})
	}

	if e.cfg.Options.AuditEnabled && e.cfg.Audit != nil {
		entry := AuditEntry{
			ID:          uuid.NewString(),
			Timestamp:   time.Now(),
			RuleSetID:   ruleSet.ID,
			RuleSetName: ruleSet.Name,
			Result:      &result,
			Metadata:    e.cfg.Options.Metadata,
		}
		if err := retryAdapter(ctx, func() error { return e.cfg.Audit.Record(ctx, entry) }); err != nil {
			slog.WarnContext(ctx, "ruleforge: audit adapter failed", "ruleSetId", ruleSet.ID, "error", err)
		}
	}

	if e.cfg.Notification != nil {
		event := NotificationEvent{RuleSetID: ruleSet.ID, Result: &result, Timestamp: time.Now()}
		switch {
		case result.Success && len(result.RulesFired) > 0:
			event.Type = "info"
			event.Message = fmt.Sprintf("execution fired %d rule(s)", len(result.RulesFired))
		case !result.Success:
			event.Type = "error"
			event.Message = result.Error
		default:
			event.Type = ""
		}
		if event.Type != "" {
			if err := retryAdapter(ctx, func() error { return e.cfg.Notification.Notify(ctx, event) }); err != nil {
				slog.WarnContext(ctx, "ruleforge: notification adapter failed", "ruleSetId", ruleSet.ID, "error", err)
			}
		}
	}

	return &result, nil
}
