package facts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	Name string `structs:"name"`
	Age  int    `structs:"age"`
}

func TestFromMapPassesThrough(t *testing.T) {
	m := map[string]any{"a": 1}
	require.Equal(t, m, From(m))
}

func TestFromNilYieldsEmptyMap(t *testing.T) {
	require.Equal(t, map[string]any{}, From(nil))
}

func TestFromStructFlattensFields(t *testing.T) {
	got := From(person{Name: "ada", Age: 30})
	require.Equal(t, "ada", got["name"])
	require.Equal(t, 30, got["age"])
}

func TestFromStructPointerFlattensFields(t *testing.T) {
	got := From(&person{Name: "grace", Age: 40})
	require.Equal(t, "grace", got["name"])
}

func TestFromPrimitiveFallsBackToEmptyMap(t *testing.T) {
	require.Equal(t, map[string]any{}, From(42))
}
