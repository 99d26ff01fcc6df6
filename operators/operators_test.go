package operators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualsNoCoercion(t *testing.T) {
	require.True(t, Builtins["equals"](float64(1), float64(1), true))
	require.False(t, Builtins["equals"]("1", float64(1), true), "equals must not coerce string to number")
	require.False(t, Builtins["equals"](nil, nil, false), "absent field is never equal, even to nil")
}

func TestNumericComparisons(t *testing.T) {
	require.True(t, Builtins["greaterThan"](float64(5), float64(3), true))
	require.False(t, Builtins["greaterThan"]("not-a-number", float64(3), true))
	require.True(t, Builtins["lessThanOrEqual"](float64(3), float64(3), true))
}

func TestBetweenBoundsInclusive(t *testing.T) {
	between := Builtins["between"]
	require.True(t, between(float64(1), []any{float64(1), float64(10)}, true))
	require.True(t, between(float64(10), []any{float64(1), float64(10)}, true))
	require.False(t, between(float64(0), []any{float64(1), float64(10)}, true))
}

func TestContainsOnArray(t *testing.T) {
	require.True(t, Builtins["contains"]([]any{float64(1), float64(2), float64(3)}, float64(2), true))
	require.False(t, Builtins["contains"]([]any{float64(1), float64(2), float64(3)}, float64(9), true))
}

func TestContainsOnString(t *testing.T) {
	require.True(t, Builtins["contains"]("hello world", "world", true))
	require.False(t, Builtins["contains"](float64(42), "world", true))
}

func TestStartsEndsWith(t *testing.T) {
	require.True(t, Builtins["startsWith"]("hello", "he", true))
	require.True(t, Builtins["endsWith"]("hello", "lo", true))
	require.False(t, Builtins["startsWith"](float64(1), "he", true))
}

func TestInNotIn(t *testing.T) {
	require.True(t, Builtins["in"]("gold", []any{"gold", "silver"}, true))
	require.False(t, Builtins["in"]("bronze", []any{"gold", "silver"}, true))
	require.True(t, Builtins["notIn"]("bronze", []any{"gold", "silver"}, true))
}

func TestIsNullIsNotNull(t *testing.T) {
	require.True(t, Builtins["isNull"](nil, nil, false))
	require.True(t, Builtins["isNull"](nil, nil, true))
	require.False(t, Builtins["isNotNull"](nil, nil, false))
	require.True(t, Builtins["isNotNull"]("x", nil, true))
}

func TestMatchesInvalidRegexIsFalse(t *testing.T) {
	require.False(t, Builtins["matches"]("abc", "(unterminated", true))
	require.True(t, Builtins["matches"]("abc123", `^abc\d+$`, true))
}

func TestAbsentFieldDefaultsToFalse(t *testing.T) {
	for name, fn := range Builtins {
		if name == "isNull" || name == "notContains" || name == "notIn" {
			continue // these invert: absent is their TRUE case
		}
		require.False(t, fn(nil, "anything", false), "operator %q should default absent field to FALSE", name)
	}
}
