package evaluator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ruleforge/ruleforge/registry"
	"github.com/ruleforge/ruleforge/types"
	"github.com/ruleforge/ruleforge/xerr"
)

// ExecuteRuleSet is the pure, reentrant firing loop (spec §4.5, §6): it
// runs beforeExecute hooks, the priority-ordered rule pass gated by
// beforeRule/afterRule, the decision-table pass, then afterExecute hooks.
// It never panics across its own boundary: any internal error (including a
// hook failure, which spec §7 counts as an EvaluationFailure) is folded
// into ExecutionResult{Success:false}, with Output/RuleResults/
// TableResults/RulesFired all empty, per spec §3.1 and §8.
func ExecuteRuleSet(ctx context.Context, reg *registry.Registry, ruleSet *types.RuleSet, input map[string]any) (result types.ExecutionResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = failure(input, start, fmt.Sprintf("panic during execution: %v", r))
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	if input == nil {
		input = map[string]any{}
	}

	effectiveInput, err := runBeforeExecute(ctx, reg, input)
	if err != nil {
		return failure(input, start, err.Error())
	}

	output := map[string]any{}
	ruleResults := make([]types.RuleResult, 0, len(ruleSet.Rules))
	rulesFired := make([]string, 0, len(ruleSet.Rules))

	for _, rule := range sortedRules(ruleSet.Rules) {
		rr, skipped, err := runRule(ctx, reg, &rule, effectiveInput)
		if err != nil {
			return failure(input, start, err.Error())
		}
		if !skipped && rr.Fired {
			for _, action := range rr.Actions {
				ApplyAction(reg, output, action)
			}
			rulesFired = append(rulesFired, rr.RuleID)
		}
		ruleResults = append(ruleResults, rr)
	}

	tableResults := make([]types.DecisionTableResult, 0, len(ruleSet.DecisionTables))
	for i := range ruleSet.DecisionTables {
		tr := EvaluateDecisionTable(reg, &ruleSet.DecisionTables[i], effectiveInput)
		for _, action := range tr.Actions {
			ApplyAction(reg, output, action)
		}
		tableResults = append(tableResults, tr)
	}

	result = types.ExecutionResult{
		Success:         true,
		Input:           effectiveInput,
		Output:          output,
		RuleResults:     ruleResults,
		TableResults:    tableResults,
		RulesFired:      rulesFired,
		ExecutionTimeMs: elapsedMs(start),
	}

	result, err = runAfterExecute(ctx, reg, result)
	if err != nil {
		return failure(input, start, err.Error())
	}
	return result
}

func failure(input map[string]any, start time.Time, message string) types.ExecutionResult {
	return types.ExecutionResult{
		Success:         false,
		Input:           input,
		Output:          map[string]any{},
		RuleResults:     []types.RuleResult{},
		TableResults:    []types.DecisionTableResult{},
		RulesFired:      []string{},
		ExecutionTimeMs: elapsedMs(start),
		Error:           message,
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// sortedRules returns rules stably sorted by descending priority —
// declaration order is the tiebreaker, satisfying spec §3.1's "stable but
// unspecified relative order (must be deterministic)".
func sortedRules(rules []types.Rule) []types.Rule {
	out := make([]types.Rule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

func runBeforeExecute(ctx context.Context, reg *registry.Registry, input map[string]any) (map[string]any, error) {
	if reg == nil {
		return input, nil
	}
	ec := &registry.ExecutionContext{Input: input}
	for _, hook := range reg.BeforeExecuteHooks() {
		next, err := hook(ctx, ec)
		if err != nil {
			return nil, xerr.NewEvaluationFailure("beforeExecute hook failed: %v", err)
		}
		if next != nil {
			ec = next
		}
	}
	if ec.Input == nil {
		return map[string]any{}, nil
	}
	return ec.Input, nil
}

func runAfterExecute(ctx context.Context, reg *registry.Registry, result types.ExecutionResult) (types.ExecutionResult, error) {
	if reg == nil {
		return result, nil
	}
	for _, hook := range reg.AfterExecuteHooks() {
		next, err := hook(ctx, &result)
		if err != nil {
			return result, xerr.NewEvaluationFailure("afterExecute hook failed: %v", err)
		}
		if next != nil {
			result = *next
		}
	}
	return result, nil
}

// runRule runs the beforeRule/evaluate/afterRule sequence for one rule. The
// returned bool reports whether a beforeRule hook skipped the rule.
func runRule(ctx context.Context, reg *registry.Registry, rule *types.Rule, input map[string]any) (types.RuleResult, bool, error) {
	rc := &registry.RuleContext{Rule: rule, Input: input}

	if reg != nil {
		for _, hook := range reg.BeforeRuleHooks() {
			if err := hook(ctx, rc); err != nil {
				return types.RuleResult{}, false, xerr.NewEvaluationFailure("beforeRule hook failed for rule %q: %v", rule.ID, err)
			}
			if rc.Skip {
				break
			}
		}
	}

	if rc.Skip {
		result := types.RuleResult{RuleID: rule.ID, RuleName: rule.Name, Fired: false}
		return result, true, nil
	}

	result := EvaluateRule(reg, rule, input)
	rc.Result = &result

	if reg != nil {
		for _, hook := range reg.AfterRuleHooks() {
			if err := hook(ctx, rc); err != nil {
				return types.RuleResult{}, false, xerr.NewEvaluationFailure("afterRule hook failed for rule %q: %v", rule.ID, err)
			}
		}
	}

	return *rc.Result, false, nil
}
