// Package fingerprint derives the deterministic input fingerprint the
// Engine Orchestrator uses as part of a result cache key
// (result:<rule-set-id>:<fingerprint>, spec §4.6, §6). The canonicalization
// is a key-sorted JSON encoding — encoding/json already sorts
// map[string]any keys alphabetically at every nesting level — hashed with
// github.com/mitchellh/hashstructure/v2, the collision-resistant digest
// family the spec's open question (§9) asks implementers to pick.
package fingerprint

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// Of returns a stable hex digest of input. Two maps with identical content
// but different key insertion order produce the same digest, since the
// canonicalization step is the JSON encoding, not the native map
// iteration.
func Of(input map[string]any) (string, error) {
	canonical, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("fingerprint: canonicalize input: %w", err)
	}

	h, err := hashstructure.Hash(string(canonical), hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("fingerprint: hash input: %w", err)
	}

	return fmt.Sprintf("%016x", h), nil
}
