package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func noopOperator(any, any, bool) bool { return true }

func TestRegisterDuplicatePluginNameFails(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterPlugin(&Plugin{Name: "p1"}))
	err := r.RegisterPlugin(&Plugin{Name: "p1"})
	require.Error(t, err)
}

func TestRegisterDuplicateOperatorNameFails(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterPlugin(&Plugin{Name: "p1", Operators: map[string]OperatorFunc{"op": noopOperator}}))
	err := r.RegisterPlugin(&Plugin{Name: "p2", Operators: map[string]OperatorFunc{"op": noopOperator}})
	require.Error(t, err, "a name is owned by at most one plugin at a time")

	_, ok := r.Operator("op")
	require.True(t, ok, "the failed registration must not disturb p1's existing operator")
}

func TestRegisterUnregisterRoundTrip(t *testing.T) {
	r := New()

	beforeOperators := r.OperatorNames()
	beforePlugins := r.PluginNames()

	require.NoError(t, r.RegisterPlugin(&Plugin{
		Name:      "temp",
		Operators: map[string]OperatorFunc{"temp-op": noopOperator},
		Actions:   map[string]ActionFunc{"temp-action": func(map[string]any, string, any) error { return nil }},
		Functions: map[string]FunctionFunc{"temp-fn": func([]any) (any, error) { return nil, nil }},
		BeforeRule: func(context.Context, *RuleContext) error { return nil },
	}))

	_, ok := r.Operator("temp-op")
	require.True(t, ok)

	require.NoError(t, r.UnregisterPlugin("temp"))

	_, ok = r.Operator("temp-op")
	require.False(t, ok)
	_, ok = r.Action("temp-action")
	require.False(t, ok)
	_, ok = r.Function("temp-fn")
	require.False(t, ok)
	require.Empty(t, r.BeforeRuleHooks())

	require.ElementsMatch(t, beforeOperators, r.OperatorNames())
	require.ElementsMatch(t, beforePlugins, r.PluginNames())
}

func TestUnregisterUnknownPluginFails(t *testing.T) {
	r := New()
	require.Error(t, r.UnregisterPlugin("does-not-exist"))
}

func TestOnRegisterFailureAbortsRegistration(t *testing.T) {
	r := New()
	err := r.RegisterPlugin(&Plugin{
		Name:      "bad",
		Operators: map[string]OperatorFunc{"should-not-stick": noopOperator},
		OnRegister: func() error {
			return context.DeadlineExceeded
		},
	})
	require.Error(t, err)
	_, ok := r.Operator("should-not-stick")
	require.False(t, ok)
}

func TestHooksPreserveRegistrationOrder(t *testing.T) {
	r := New()
	var order []string

	require.NoError(t, r.RegisterPlugin(&Plugin{
		Name: "a",
		BeforeExecute: func(ctx context.Context, ec *ExecutionContext) (*ExecutionContext, error) {
			order = append(order, "a")
			return ec, nil
		},
	}))
	require.NoError(t, r.RegisterPlugin(&Plugin{
		Name: "b",
		BeforeExecute: func(ctx context.Context, ec *ExecutionContext) (*ExecutionContext, error) {
			order = append(order, "b")
			return ec, nil
		},
	}))

	for _, hook := range r.BeforeExecuteHooks() {
		_, _ = hook(context.Background(), &ExecutionContext{Input: map[string]any{}})
	}
	require.Equal(t, []string{"a", "b"}, order)
}

func TestOnDestroyRunsOnUnregister(t *testing.T) {
	r := New()
	destroyed := false
	require.NoError(t, r.RegisterPlugin(&Plugin{
		Name:      "d",
		OnDestroy: func() { destroyed = true },
	}))
	require.NoError(t, r.UnregisterPlugin("d"))
	require.True(t, destroyed)
}
