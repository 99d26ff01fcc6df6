// Package evaluator implements the pure algorithm at the center of the
// engine (spec §2 item 5): condition-group evaluation, the priority-ordered
// rule firing loop, decision-table matching, and action application. Every
// exported entry point here is synchronous, side-effect free beyond the
// output object it is handed, and never panics across its own boundary —
// the Engine Orchestrator is the only layer that touches I/O (spec §5).
package evaluator

import (
	"github.com/ruleforge/ruleforge/operators"
	"github.com/ruleforge/ruleforge/pathresolver"
	"github.com/ruleforge/ruleforge/registry"
	"github.com/ruleforge/ruleforge/types"
)

// dispatchOperator resolves op through the plugin table first, falling
// back to the built-in kernel, and finally to an always-false stub for an
// unknown name — spec §4.2's "unknown operator → FALSE, never throws".
func dispatchOperator(reg *registry.Registry, op string) operators.Func {
	if reg != nil {
		if fn, ok := reg.Operator(op); ok {
			return fn
		}
	}
	if fn, ok := operators.Builtins[op]; ok {
		return fn
	}
	return func(any, any, bool) bool { return false }
}

// EvaluateGroup recursively evaluates a ConditionGroup against input. An
// empty group is TRUE regardless of Logic (spec §3.1).
func EvaluateGroup(reg *registry.Registry, group *types.ConditionGroup, input map[string]any) bool {
	if group == nil || len(group.Conditions) == 0 {
		return true
	}

	switch group.Logic {
	case types.LogicOr:
		for _, el := range group.Conditions {
			if evaluateElement(reg, el, input) {
				return true
			}
		}
		return false
	default: // types.LogicAnd and anything unrecognized defaults to AND
		for _, el := range group.Conditions {
			if !evaluateElement(reg, el, input) {
				return false
			}
		}
		return true
	}
}

func evaluateElement(reg *registry.Registry, el types.GroupElement, input map[string]any) bool {
	switch e := el.(type) {
	case *types.Condition:
		return evaluateCondition(reg, e, input)
	case *types.ConditionGroup:
		return EvaluateGroup(reg, e, input)
	default:
		return false
	}
}

func evaluateCondition(reg *registry.Registry, cond *types.Condition, input map[string]any) bool {
	fieldValue, found := pathresolver.Resolve(input, cond.Field)
	op := dispatchOperator(reg, cond.Operator)
	return op(fieldValue, cond.Value, found)
}
