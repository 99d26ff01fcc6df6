package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruleforge/ruleforge/xerr"
)

const validRuleSetJSON = `{
	"id": "rs1",
	"name": "example",
	"rules": [
		{
			"id": "r1",
			"name": "always-fires",
			"priority": 1,
			"enabled": true,
			"conditions": {"logic": "AND", "conditions": []},
			"actions": [{"type": "SET", "field": "x", "value": 1}]
		}
	]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileValidRuleSet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.json", validRuleSetJSON)

	rs, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "rs1", rs.ID)
	require.Len(t, rs.Rules, 1)
	require.Equal(t, "r1", rs.Rules[0].ID)
}

func TestLoadFileMissingFails(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
}

func TestLoadFileInvalidJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", "{not json")
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileDuplicateRuleIDFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dup.json", `{
		"id": "rs1",
		"rules": [
			{"id": "r1", "conditions": {"logic": "AND", "conditions": []}},
			{"id": "r1", "conditions": {"logic": "AND", "conditions": []}}
		]
	}`)
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileIncompatibleEngineVersionFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gated.json", `{
		"id": "rs1",
		"engineVersion": ">=2.0.0",
		"rules": []
	}`)
	_, err := LoadFile(path)
	require.Error(t, err)
	require.True(t, xerr.IsConfigurationError(err))
}

func TestLoadManifestAndReferencedRuleSets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rules.json", validRuleSetJSON)
	manifestPath := writeFile(t, dir, "manifest.toml", `
schema_version = "1"
name = "bundle"
version = "0.1.0"
rule_sets = ["rules.json"]
`)

	manifest, sets, err := LoadManifestRuleSets(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "bundle", manifest.Name)
	require.Len(t, sets, 1)
	require.Equal(t, "rs1", sets[0].ID)
}

func TestLoadManifestIncompatibleEngineVersionFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.toml", `
schema_version = "1"
name = "bundle"
engine_version = ">=2.0.0"
`)
	_, err := LoadManifest(path)
	require.Error(t, err)
	require.True(t, xerr.IsConfigurationError(err))
}
