// Package ruleset provides a convenience loader for rule sets stored on
// disk: a RuleSet as JSON (the conventional wire format per spec §6), and
// an optional TOML manifest bundling several rule-set files with metadata,
// shaped like the teacher's PackFile (SPEC_FULL.md §4b). Neither format is
// prescribed by the evaluator itself — engine.LoadRuleSet accepts a
// *types.RuleSet or a string id just as readily.
package ruleset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ruleforge/ruleforge/compat"
	"github.com/ruleforge/ruleforge/types"
)

// LoadFile reads a RuleSet from a JSON file and validates it.
func LoadFile(path string) (*types.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}

	var rs types.RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("ruleset: parse %s: %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("ruleset: %s: %w", path, err)
	}
	if err := compat.Check(rs.EngineVersion); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Manifest is a TOML bundle descriptor for a group of rule sets, modeled
// on the teacher's pack.PackFile.
type Manifest struct {
	SchemaVersion string         `toml:"schema_version"`
	Name          string         `toml:"name"`
	Version       string         `toml:"version,omitempty"`
	Description   string         `toml:"description,omitempty"`
	EngineVersion string         `toml:"engine_version,omitempty"`
	RuleSets      []string       `toml:"rule_sets,omitempty"`
	Metadata      map[string]any `toml:"metadata,omitempty"`
}

// LoadManifest reads and parses a TOML manifest file. Its EngineVersion,
// if set, is checked against compat.EngineVersion the same way a RuleSet's
// is.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("ruleset: parse manifest %s: %w", path, err)
	}
	if err := compat.Check(m.EngineVersion); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifestRuleSets loads every rule-set file a manifest references,
// resolved relative to the manifest's own directory.
func LoadManifestRuleSets(manifestPath string) (*Manifest, []*types.RuleSet, error) {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(manifestPath)
	sets := make([]*types.RuleSet, 0, len(m.RuleSets))
	for _, rel := range m.RuleSets {
		rs, err := LoadFile(filepath.Join(dir, rel))
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, rs)
	}
	return m, sets, nil
}
