// Package registry implements the Plugin Registry (spec §2 item 4): a
// mutable, name-keyed lookup table for custom operators, action handlers,
// lifecycle hooks, and functions, read-borrowed by the Evaluator during one
// execution and mutated only administratively between executions (spec
// §3.2, §5).
package registry

import (
	"context"
	"sync"

	"github.com/binaek/gocoll/collection"

	"github.com/ruleforge/ruleforge/operators"
	"github.com/ruleforge/ruleforge/types"
	"github.com/ruleforge/ruleforge/xerr"
)

// OperatorFunc is the plugin-operator shape, identical to the built-in
// operator shape so either can be dispatched uniformly.
type OperatorFunc = operators.Func

// ActionFunc is a plugin action handler: mutate output at field with value,
// or return an error to have it treated as a no-op (never fatal).
type ActionFunc func(output map[string]any, field string, value any) error

// FunctionFunc is a named callable plugins may expose for scripted
// conditions/actions or direct host-side use.
type FunctionFunc func(args []any) (any, error)

// ExecutionContext is the mutable value beforeExecute/afterExecute hooks
// observe and may rewrite — modeled, per the teacher's middleware-pipeline
// shape, as a plain struct threaded through a chain of functions.
type ExecutionContext struct {
	Input map[string]any
}

// RuleContext is what beforeRule/afterRule hooks observe. Setting Skip in a
// beforeRule hook causes the rule to be recorded fired=false without
// evaluation. Result is only populated for afterRule.
type RuleContext struct {
	Rule   *types.Rule
	Input  map[string]any
	Skip   bool
	Result *types.RuleResult
}

type (
	BeforeExecuteHook func(ctx context.Context, ec *ExecutionContext) (*ExecutionContext, error)
	AfterExecuteHook  func(ctx context.Context, result *types.ExecutionResult) (*types.ExecutionResult, error)
	BeforeRuleHook    func(ctx context.Context, rc *RuleContext) error
	AfterRuleHook     func(ctx context.Context, rc *RuleContext) error
)

// Plugin bundles whatever subset of operators, actions, functions, and
// hooks a single extension contributes. Name must be unique across
// currently-registered plugins; every operator/action/function name it
// contributes must also be currently unowned (spec §8's "registry add/
// remove round-trip" invariant is trivially satisfied this way — a name
// only ever has one owner at a time).
type Plugin struct {
	Name string

	Operators map[string]OperatorFunc
	Actions   map[string]ActionFunc
	Functions map[string]FunctionFunc

	BeforeExecute BeforeExecuteHook
	AfterExecute  AfterExecuteHook
	BeforeRule    BeforeRuleHook
	AfterRule     AfterRuleHook

	// OnRegister runs synchronously inside RegisterPlugin; a non-nil error
	// aborts registration (nothing from this plugin is installed).
	OnRegister func() error
	// OnDestroy runs inside UnregisterPlugin, after this plugin's
	// contributions have been removed.
	OnDestroy func()
}

// Registry is the shared, long-lived lookup table. Its zero value is not
// usable; construct with New.
type Registry struct {
	mu sync.RWMutex

	plugins map[string]*Plugin

	operators map[string]string // operator name -> owning plugin name
	actions   map[string]string
	functions map[string]string

	operatorFns map[string]OperatorFunc
	actionFns   map[string]ActionFunc
	functionFns map[string]FunctionFunc

	beforeExecute []namedHook[BeforeExecuteHook]
	afterExecute  []namedHook[AfterExecuteHook]
	beforeRule    []namedHook[BeforeRuleHook]
	afterRule     []namedHook[AfterRuleHook]
}

type namedHook[T any] struct {
	plugin string
	hook   T
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{
		plugins:     make(map[string]*Plugin),
		operators:   make(map[string]string),
		actions:     make(map[string]string),
		functions:   make(map[string]string),
		operatorFns: make(map[string]OperatorFunc),
		actionFns:   make(map[string]ActionFunc),
		functionFns: make(map[string]FunctionFunc),
	}
}

// RegisterPlugin installs p, failing with a ConfigurationError if p.Name is
// already registered or if any name it contributes is already owned by
// another plugin.
func (r *Registry) RegisterPlugin(p *Plugin) error {
	if p == nil || p.Name == "" {
		return xerr.NewConfigurationError("plugin must have a non-empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[p.Name]; ok {
		return xerr.NewConfigurationError("plugin %q is already registered", p.Name)
	}

	for name := range p.Operators {
		if owner, ok := r.operators[name]; ok {
			return xerr.NewConfigurationError("operator %q already registered by plugin %q", name, owner)
		}
	}
	for name := range p.Actions {
		if owner, ok := r.actions[name]; ok {
			return xerr.NewConfigurationError("action %q already registered by plugin %q", name, owner)
		}
	}
	for name := range p.Functions {
		if owner, ok := r.functions[name]; ok {
			return xerr.NewConfigurationError("function %q already registered by plugin %q", name, owner)
		}
	}

	if p.OnRegister != nil {
		if err := p.OnRegister(); err != nil {
			return xerr.NewConfigurationError("plugin %q onRegister failed: %v", p.Name, err)
		}
	}

	for name, fn := range p.Operators {
		r.operators[name] = p.Name
		r.operatorFns[name] = fn
	}
	for name, fn := range p.Actions {
		r.actions[name] = p.Name
		r.actionFns[name] = fn
	}
	for name, fn := range p.Functions {
		r.functions[name] = p.Name
		r.functionFns[name] = fn
	}
	if p.BeforeExecute != nil {
		r.beforeExecute = append(r.beforeExecute, namedHook[BeforeExecuteHook]{p.Name, p.BeforeExecute})
	}
	if p.AfterExecute != nil {
		r.afterExecute = append(r.afterExecute, namedHook[AfterExecuteHook]{p.Name, p.AfterExecute})
	}
	if p.BeforeRule != nil {
		r.beforeRule = append(r.beforeRule, namedHook[BeforeRuleHook]{p.Name, p.BeforeRule})
	}
	if p.AfterRule != nil {
		r.afterRule = append(r.afterRule, namedHook[AfterRuleHook]{p.Name, p.AfterRule})
	}

	r.plugins[p.Name] = p
	return nil
}

// UnregisterPlugin removes every contribution p.Name made and runs its
// OnDestroy, if any. Unregistering an unknown plugin name is a
// ConfigurationError.
func (r *Registry) UnregisterPlugin(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plugins[name]
	if !ok {
		return xerr.NewConfigurationError("plugin %q is not registered", name)
	}

	for opName := range p.Operators {
		delete(r.operators, opName)
		delete(r.operatorFns, opName)
	}
	for actName := range p.Actions {
		delete(r.actions, actName)
		delete(r.actionFns, actName)
	}
	for fnName := range p.Functions {
		delete(r.functions, fnName)
		delete(r.functionFns, fnName)
	}
	r.beforeExecute = removeOwned(r.beforeExecute, name)
	r.afterExecute = removeOwned(r.afterExecute, name)
	r.beforeRule = removeOwned(r.beforeRule, name)
	r.afterRule = removeOwned(r.afterRule, name)

	delete(r.plugins, name)

	if p.OnDestroy != nil {
		p.OnDestroy()
	}
	return nil
}

func removeOwned[T any](hooks []namedHook[T], plugin string) []namedHook[T] {
	if len(hooks) == 0 {
		return hooks
	}
	out := make([]namedHook[T], 0, len(hooks))
	for _, h := range hooks {
		if h.plugin != plugin {
			out = append(out, h)
		}
	}
	return out
}

// Operator looks up a plugin-registered operator by name.
func (r *Registry) Operator(name string) (OperatorFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.operatorFns[name]
	return fn, ok
}

// Action looks up a plugin-registered action handler by name.
func (r *Registry) Action(name string) (ActionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.actionFns[name]
	return fn, ok
}

// Function looks up a plugin-registered function by name.
func (r *Registry) Function(name string) (FunctionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functionFns[name]
	return fn, ok
}

// BeforeExecuteHooks returns the registered beforeExecute hooks in
// registration order.
func (r *Registry) BeforeExecuteHooks() []BeforeExecuteHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collection.Map(collection.From(r.beforeExecute...), func(h namedHook[BeforeExecuteHook]) BeforeExecuteHook {
		return h.hook
	}).Elements()
}

// AfterExecuteHooks returns the registered afterExecute hooks in
// registration order.
func (r *Registry) AfterExecuteHooks() []AfterExecuteHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collection.Map(collection.From(r.afterExecute...), func(h namedHook[AfterExecuteHook]) AfterExecuteHook {
		return h.hook
	}).Elements()
}

// BeforeRuleHooks returns the registered beforeRule hooks in registration
// order.
func (r *Registry) BeforeRuleHooks() []BeforeRuleHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collection.Map(collection.From(r.beforeRule...), func(h namedHook[BeforeRuleHook]) BeforeRuleHook {
		return h.hook
	}).Elements()
}

// AfterRuleHooks returns the registered afterRule hooks in registration
// order.
func (r *Registry) AfterRuleHooks() []AfterRuleHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collection.Map(collection.From(r.afterRule...), func(h namedHook[AfterRuleHook]) AfterRuleHook {
		return h.hook
	}).Elements()
}

// OperatorNames returns the names currently owned by plugins, for
// diagnostics/introspection.
func (r *Registry) OperatorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.operatorFns))
	for name := range r.operatorFns {
		names = append(names, name)
	}
	return names
}

// PluginNames returns the currently registered plugin names.
func (r *Registry) PluginNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	return names
}
