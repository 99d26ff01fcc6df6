// Package facts converts arbitrary Go values into the canonical
// map[string]any fact shape the evaluator operates on, using
// github.com/fatih/structs for struct inputs — a convenience for callers
// who build input from typed domain objects rather than hand-built maps.
package facts

import (
	"encoding/json"

	"github.com/fatih/structs"
)

// From coerces v into a map[string]any. A map[string]any passes through
// unchanged; a struct (or pointer to one) is flattened field-by-field via
// structs.Map; anything else is best-effort round-tripped through JSON.
func From(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case nil:
		return map[string]any{}
	}

	if structs.IsStruct(v) {
		return structs.Map(v)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}
