package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruleforge/ruleforge/types"
)

func riskTable(hitPolicy types.HitPolicy) types.DecisionTable {
	columns := []types.Column{
		{ID: "c_age", Field: "age", Type: types.ColumnCondition, Operator: "greaterThanOrEqual"},
		{ID: "c_income", Field: "income", Type: types.ColumnCondition, Operator: "greaterThan"},
		{ID: "a_risk", Field: "riskLevel", Type: types.ColumnAction, ActionType: types.ActionSet},
	}
	rows := []types.Row{
		{ID: "r1", Enabled: true, Values: map[string]any{"c_age": float64(30), "c_income": float64(80000), "a_risk": "low"}},
		{ID: "r2", Enabled: true, Values: map[string]any{"c_age": float64(18), "c_income": float64(40000), "a_risk": "medium"}},
		{ID: "r3", Enabled: true, Values: map[string]any{"c_age": float64(18), "c_income": float64(0), "a_risk": "high"}},
	}
	return types.DecisionTable{ID: "risk", Columns: columns, Rows: rows, HitPolicy: hitPolicy}
}

func TestDecisionTableFirstStopsAtFirstMatch(t *testing.T) {
	table := riskTable(types.HitPolicyFirst)
	result := EvaluateDecisionTable(nil, &table, map[string]any{"age": float64(35), "income": float64(100000)})
	require.Equal(t, []string{"r1"}, result.MatchedRows)
	require.Equal(t, "low", result.Actions[0].Value)
}

func TestDecisionTableAllVisitsEveryRow(t *testing.T) {
	table := riskTable(types.HitPolicyAll)
	result := EvaluateDecisionTable(nil, &table, map[string]any{"age": float64(35), "income": float64(100000)})
	require.Equal(t, []string{"r1", "r2", "r3"}, result.MatchedRows)
}

func TestDecisionTableCollectBehavesLikeAll(t *testing.T) {
	first := riskTable(types.HitPolicyAll)
	collect := riskTable(types.HitPolicyCollect)
	input := map[string]any{"age": float64(35), "income": float64(100000)}
	require.Equal(t, EvaluateDecisionTable(nil, &first, input), EvaluateDecisionTable(nil, &collect, input))
}

func TestDecisionTableWildcardMatchesAnyInput(t *testing.T) {
	table := riskTable(types.HitPolicyAll)
	table.Rows[0] = types.Row{
		ID:      "r1",
		Enabled: true,
		Values:  map[string]any{"c_age": "*", "c_income": nil, "a_risk": "universal"},
	}
	result := EvaluateDecisionTable(nil, &table, map[string]any{"age": float64(1), "income": float64(0)})
	require.Contains(t, result.MatchedRows, "r1")
}

func TestDecisionTableBlankActionCellContributesNoAction(t *testing.T) {
	table := riskTable(types.HitPolicyAll)
	table.Rows[0].Values["a_risk"] = ""
	result := EvaluateDecisionTable(nil, &table, map[string]any{"age": float64(35), "income": float64(100000)})
	require.Contains(t, result.MatchedRows, "r1")
	for _, action := range result.Actions {
		require.NotEqual(t, "", action.Value)
	}
}

func TestDecisionTableDisabledRowsNeverMatch(t *testing.T) {
	for _, policy := range []types.HitPolicy{types.HitPolicyFirst, types.HitPolicyAll, types.HitPolicyCollect} {
		table := riskTable(policy)
		table.Rows[0].Enabled = false
		result := EvaluateDecisionTable(nil, &table, map[string]any{"age": float64(35), "income": float64(100000)})
		require.NotContains(t, result.MatchedRows, "r1")
	}
}
