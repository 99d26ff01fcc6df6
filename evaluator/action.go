package evaluator

import (
	"github.com/ruleforge/ruleforge/internal/coerce"
	"github.com/ruleforge/ruleforge/pathresolver"
	"github.com/ruleforge/ruleforge/registry"
	"github.com/ruleforge/ruleforge/types"
)

// ApplyAction mutates output per action, dispatching plugin action handlers
// before the built-in SET/APPEND/INCREMENT/DECREMENT/CUSTOM set (spec
// §4.5). Unknown action types with no handler are silently ignored; a
// plugin handler's error is likewise swallowed — action application never
// fails the evaluation.
func ApplyAction(reg *registry.Registry, output map[string]any, action types.Action) {
	if reg != nil {
		if fn, ok := reg.Action(string(action.Type)); ok {
			_ = fn(output, action.Field, action.Value)
			return
		}
	}

	switch action.Type {
	case types.ActionSet:
		pathresolver.Set(output, action.Field, action.Value)
	case types.ActionAppend:
		applyAppend(output, action.Field, action.Value)
	case types.ActionIncrement:
		applyDelta(output, action.Field, action.Value, 1)
	case types.ActionDecrement:
		applyDelta(output, action.Field, action.Value, -1)
	case types.ActionCustom:
		// No plugin handler claimed this custom type: fall back to SET.
		pathresolver.Set(output, action.Field, action.Value)
	default:
		// Unknown type, no handler: ignored.
	}
}

func applyAppend(output map[string]any, field string, value any) {
	current, found := pathresolver.Resolve(output, field)
	if !found {
		pathresolver.Set(output, field, []any{value})
		return
	}
	seq, ok := current.([]any)
	if !ok {
		pathresolver.Set(output, field, []any{value})
		return
	}
	pathresolver.Set(output, field, append(append([]any{}, seq...), value))
}

func applyDelta(output map[string]any, field string, value any, sign float64) {
	delta, ok := coerce.ToFloat(value)
	if !ok {
		return
	}
	current, found := pathresolver.Resolve(output, field)
	base := 0.0
	if found {
		if f, ok := coerce.ToFloat(current); ok {
			base = f
		}
	}
	pathresolver.Set(output, field, base+sign*delta)
}
