// Package scripting backs scripted plugin operators/actions with pooled
// goja runtimes (SPEC_FULL.md §4a), the same JS engine the teacher embeds
// for its own scripting surface, borrowed from a github.com/jackc/puddle/v2
// pool instead of constructed per call.
package scripting

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
	"github.com/jackc/puddle/v2"
)

// Pool lends out *goja.Runtime instances for scripted operator/action
// evaluation.
type Pool struct {
	pool *puddle.Pool[*goja.Runtime]
}

// NewPool creates a pool capped at size concurrently-live runtimes.
func NewPool(size int32) (*Pool, error) {
	cfg := &puddle.Config[*goja.Runtime]{
		Constructor: func(_ context.Context) (*goja.Runtime, error) {
			return goja.New(), nil
		},
		Destructor: func(*goja.Runtime) {},
		MaxSize:    size,
	}
	p, err := puddle.NewPool(cfg)
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

// Close releases every pooled runtime. Safe to call once, at engine
// shutdown.
func (p *Pool) Close() {
	p.pool.Close()
}

// EvalBool runs source as a JS expression with `field`, `compare`, and
// `found` bound as globals, and interprets its result as a boolean. Any JS
// exception or a non-boolean result is returned as an error — the caller
// (registry.NewScriptedOperator) treats that as "operator not applicable",
// never a panic.
func (p *Pool) EvalBool(ctx context.Context, source string, field, compare any, found bool) (bool, error) {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer res.Release()

	rt := res.Value()
	rt.Set("field", field)
	rt.Set("compare", compare)
	rt.Set("found", found)

	v, err := rt.RunString(source)
	if err != nil {
		return false, err
	}
	b, ok := v.Export().(bool)
	if !ok {
		return false, fmt.Errorf("scripted operator did not return a boolean: %v", v.Export())
	}
	return b, nil
}

// EvalValue runs source as a JS expression with `field`, `value`, and
// `found` bound as globals, and returns its exported result — used by
// scripted actions to compute the value a mutator writes.
func (p *Pool) EvalValue(ctx context.Context, source string, field, value any, found bool) (any, error) {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer res.Release()

	rt := res.Value()
	rt.Set("field", field)
	rt.Set("value", value)
	rt.Set("found", found)

	v, err := rt.RunString(source)
	if err != nil {
		return nil, err
	}
	return v.Export(), nil
}
