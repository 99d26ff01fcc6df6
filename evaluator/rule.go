package evaluator

import (
	"github.com/ruleforge/ruleforge/registry"
	"github.com/ruleforge/ruleforge/types"
)

// EvaluateRule is the pure per-rule entry point (spec §6): a disabled rule
// never fires; otherwise its ConditionGroup is evaluated against input.
// Actions are returned declaratively, not applied — applying them to an
// output object is the firing loop's job (see ExecuteRuleSet).
func EvaluateRule(reg *registry.Registry, rule *types.Rule, input map[string]any) types.RuleResult {
	result := types.RuleResult{RuleID: rule.ID, RuleName: rule.Name}

	if !rule.Enabled {
		return result
	}
	if !EvaluateGroup(reg, rule.Conditions, input) {
		return result
	}

	result.Fired = true
	result.Actions = append([]types.Action{}, rule.Actions...)
	return result
}
