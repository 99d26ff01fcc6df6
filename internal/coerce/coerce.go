// Package coerce holds the small numeric/string coercion helpers shared by
// the operator kernel and the evaluator's built-in action handlers. Kept
// internal because the coercion rules are an implementation detail of the
// operator alphabet, not part of the public contract.
package coerce

import (
	"fmt"
	"strconv"
)

// ToFloat coerces a dynamic value to float64 the way the operator kernel's
// numeric comparisons require. Decoded JSON numbers already arrive as
// float64; this also accepts the Go-native integer kinds a caller might
// construct a RuleSet with directly, and numeric strings.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToString renders a dynamic value as a string for substring/prefix/suffix
// operators — never fails, mirroring JS's implicit string coercion that the
// original engine relied on.
func ToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// AsSequence returns v as a []any if it is one, with ok=false otherwise.
func AsSequence(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
