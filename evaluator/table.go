package evaluator

import (
	"github.com/ruleforge/ruleforge/pathresolver"
	"github.com/ruleforge/ruleforge/registry"
	"github.com/ruleforge/ruleforge/types"
)

// isWildcard reports whether a decision-table cell value is a wildcard:
// absent (caller passes found=false), empty string, null, or the literal
// "*" — any of which match every field value (spec §4.4).
func isWildcard(cell any, found bool) bool {
	if !found || cell == nil {
		return true
	}
	if s, ok := cell.(string); ok {
		return s == "" || s == "*"
	}
	return false
}

// rowMatches evaluates one row's condition columns against input.
func rowMatches(reg *registry.Registry, columns []types.Column, row types.Row, input map[string]any) bool {
	for _, col := range columns {
		if col.Type != types.ColumnCondition {
			continue
		}
		cell, found := row.Values[col.ID]
		if isWildcard(cell, found) {
			continue
		}

		op := col.Operator
		if op == "" {
			op = "equals"
		}
		fieldValue, fieldFound := pathresolver.Resolve(input, col.Field)
		if !dispatchOperator(reg, op)(fieldValue, cell, fieldFound) {
			return false
		}
	}
	return true
}

// rowActions collects the Actions a matched row emits: one per non-blank
// action column. A blank cell — absent, null, or "" — means this column
// contributes no action for this row. Unlike isWildcard for condition
// cells, a literal "*" in an action cell is not blank: it is emitted as the
// action's value.
func rowActions(columns []types.Column, row types.Row) []types.Action {
	var actions []types.Action
	for _, col := range columns {
		if col.Type != types.ColumnAction {
			continue
		}
		cell, found := row.Values[col.ID]
		if !found || cell == nil || cell == "" {
			continue
		}
		actType := col.ActionType
		if actType == "" {
			actType = types.ActionSet
		}
		actions = append(actions, types.Action{Type: actType, Field: col.Field, Value: cell})
	}
	return actions
}

// EvaluateDecisionTable is the pure per-table entry point (spec §6),
// applying the table's hit policy over its rows in declaration order.
// COLLECT is implemented identically to ALL, per the spec's own open
// question (spec §4.4, §9).
func EvaluateDecisionTable(reg *registry.Registry, table *types.DecisionTable, input map[string]any) types.DecisionTableResult {
	result := types.DecisionTableResult{TableID: table.ID, TableName: table.Name}

	for _, row := range table.Rows {
		if !row.Enabled {
			continue
		}
		if !rowMatches(reg, table.Columns, row, input) {
			continue
		}

		result.MatchedRows = append(result.MatchedRows, row.ID)
		result.Actions = append(result.Actions, rowActions(table.Columns, row)...)

		if table.HitPolicy == types.HitPolicyFirst {
			break
		}
	}

	return result
}
