package registry

import (
	"context"

	"github.com/ruleforge/ruleforge/pathresolver"
	"github.com/ruleforge/ruleforge/scripting"
)

// NewScriptedOperator wraps a JS predicate as an OperatorFunc, backed by
// pool. A scripted operator that throws or returns a non-boolean degrades to
// FALSE — the same total-failure-safety the built-in operator kernel
// guarantees (spec §4.7), never a panic out of evaluation. The script runs
// under context.Background(), so no time limit is applied.
func NewScriptedOperator(pool *scripting.Pool, source string) OperatorFunc {
	return func(fieldValue, compareValue any, found bool) bool {
		ok, err := pool.EvalBool(context.Background(), source, fieldValue, compareValue, found)
		if err != nil {
			return false
		}
		return ok
	}
}

// NewScriptedAction wraps a JS mutator as an ActionFunc: the script
// computes a value from `field`/`value`/`found`, which is then SET at
// field in output. A script error is returned to the caller, who treats
// every action-handler error as a no-op.
func NewScriptedAction(pool *scripting.Pool, source string) ActionFunc {
	return func(output map[string]any, field string, value any) error {
		current, found := pathresolver.Resolve(output, field)
		result, err := pool.EvalValue(context.Background(), source, current, value, found)
		if err != nil {
			return err
		}
		pathresolver.Set(output, field, result)
		return nil
	}
}
