// Package operators implements the built-in comparison alphabet (spec
// §4.3), grounded on the teacher's eval_infix.go switch-over-operator-name
// shape — minus its trinary return type, since this alphabet is strictly
// boolean.
package operators

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/ruleforge/ruleforge/internal/coerce"
)

// Func is the shape every built-in and plugin operator implements: resolve
// a field, dispatch it against a comparison value, return a strict bool.
// found is false when the field was absent (or null at an intermediate
// hop) from the input — see pathresolver.Resolve.
type Func func(fieldValue, compareValue any, found bool) bool

// Builtins is the closed operator table. Unknown names are not present
// here; callers fall back to FALSE per spec §4.2.
var Builtins = map[string]Func{
	"equals":             equals,
	"notEquals":          notEquals,
	"greaterThan":        numCompare(func(a, b float64) bool { return a > b }),
	"greaterThanOrEqual": numCompare(func(a, b float64) bool { return a >= b }),
	"lessThan":           numCompare(func(a, b float64) bool { return a < b }),
	"lessThanOrEqual":    numCompare(func(a, b float64) bool { return a <= b }),
	"contains":           contains,
	"notContains":        notContains,
	"startsWith":         startsWith,
	"endsWith":           endsWith,
	"in":                 in,
	"notIn":              notIn,
	"between":            between,
	"isNull":             isNull,
	"isNotNull":          isNotNull,
	"matches":            matches,
}

func equals(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	return reflect.DeepEqual(fieldValue, compareValue)
}

func notEquals(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	return !reflect.DeepEqual(fieldValue, compareValue)
}

func numCompare(cmp func(a, b float64) bool) Func {
	return func(fieldValue, compareValue any, found bool) bool {
		if !found {
			return false
		}
		a, ok := coerce.ToFloat(fieldValue)
		if !ok {
			return false
		}
		b, ok := coerce.ToFloat(compareValue)
		if !ok {
			return false
		}
		return cmp(a, b)
	}
}

func contains(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	switch fv := fieldValue.(type) {
	case string:
		return strings.Contains(fv, coerce.ToString(compareValue))
	case []any:
		for _, el := range fv {
			if reflect.DeepEqual(el, compareValue) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func notContains(fieldValue, compareValue any, found bool) bool {
	if !found {
		return true
	}
	switch fieldValue.(type) {
	case string, []any:
		return !contains(fieldValue, compareValue, found)
	default:
		return true
	}
}

func startsWith(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	fv, ok := fieldValue.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(fv, coerce.ToString(compareValue))
}

func endsWith(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	fv, ok := fieldValue.(string)
	if !ok {
		return false
	}
	return strings.HasSuffix(fv, coerce.ToString(compareValue))
}

func in(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	seq, ok := coerce.AsSequence(compareValue)
	if !ok {
		return false
	}
	for _, el := range seq {
		if reflect.DeepEqual(el, fieldValue) {
			return true
		}
	}
	return false
}

func notIn(fieldValue, compareValue any, found bool) bool {
	if !found {
		return true
	}
	seq, ok := coerce.AsSequence(compareValue)
	if !ok {
		return true
	}
	for _, el := range seq {
		if reflect.DeepEqual(el, fieldValue) {
			return false
		}
	}
	return true
}

func between(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	bounds, ok := coerce.AsSequence(compareValue)
	if !ok || len(bounds) != 2 {
		return false
	}
	v, ok := coerce.ToFloat(fieldValue)
	if !ok {
		return false
	}
	lo, ok := coerce.ToFloat(bounds[0])
	if !ok {
		return false
	}
	hi, ok := coerce.ToFloat(bounds[1])
	if !ok {
		return false
	}
	return v >= lo && v <= hi
}

func isNull(fieldValue, compareValue any, found bool) bool {
	return !found || fieldValue == nil
}

func isNotNull(fieldValue, compareValue any, found bool) bool {
	return found && fieldValue != nil
}

func matches(fieldValue, compareValue any, found bool) bool {
	if !found {
		return false
	}
	fv, ok := fieldValue.(string)
	if !ok {
		return false
	}
	pattern, ok := compareValue.(string)
	if !ok {
		return false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(fv)
}
