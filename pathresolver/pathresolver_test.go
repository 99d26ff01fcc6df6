package pathresolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	obj := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": 42,
			},
			"nullish": nil,
		},
		"top": "value",
	}

	v, ok := Resolve(obj, "a.b.c")
	require.True(t, ok)
	require.Equal(t, 42, v)

	v, ok = Resolve(obj, "top")
	require.True(t, ok)
	require.Equal(t, "value", v)

	_, ok = Resolve(obj, "a.missing.c")
	require.False(t, ok)

	_, ok = Resolve(obj, "a.nullish.c")
	require.False(t, ok, "descending through a null intermediate must report absent")

	v, ok = Resolve(obj, "a.nullish")
	require.True(t, ok, "the terminal value itself may be null and still be 'found'")
	require.Nil(t, v)

	_, ok = Resolve(nil, "a.b")
	require.False(t, ok)

	_, ok = Resolve(obj, "")
	require.False(t, ok)
}

func TestSet(t *testing.T) {
	obj := map[string]any{}
	Set(obj, "a.b.c", 1)
	require.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, obj)

	Set(obj, "a.b.c", 2)
	v, ok := Resolve(obj, "a.b.c")
	require.True(t, ok)
	require.Equal(t, 2, v)

	// overwriting a non-mapping intermediate is consistent: it becomes a map.
	obj2 := map[string]any{"a": "not a map"}
	Set(obj2, "a.b", "x")
	v, ok = Resolve(obj2, "a.b")
	require.True(t, ok)
	require.Equal(t, "x", v)
}
