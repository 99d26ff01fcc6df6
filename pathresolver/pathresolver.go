// Package pathresolver implements dot-notation access over the canonical
// map[string]any fact shape, grounded on the field-access semantics every
// operator and action in this module builds on (spec §4.1).
package pathresolver

import "strings"

// Resolve reads "a.b.c" out of obj. The second return value is false when
// any intermediate key is absent or holds a null-ish (nil) value — the
// caller cannot distinguish "absent" from "explicitly null" at an
// intermediate hop, only at the terminal one, matching isNull/isNotNull's
// need to tell "absent" apart from "present but null" only for the leaf.
func Resolve(obj map[string]any, path string) (any, bool) {
	if obj == nil || path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")
	cur := obj
	for i, p := range parts {
		v, exists := cur[p]
		if !exists {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// Set writes v at "a.b.c" within obj, creating intermediate map[string]any
// mappings as needed. A non-mapping intermediate is overwritten with a
// fresh map — a deliberate, consistent resolution of the spec's "undefined"
// clause.
func Set(obj map[string]any, path string, v any) {
	if obj == nil || path == "" {
		return
	}

	parts := strings.Split(path, ".")
	cur := obj
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = v
			return
		}
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
}
