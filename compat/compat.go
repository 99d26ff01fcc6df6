// Package compat gates rule-set/engine compatibility via an optional
// semver constraint on RuleSet.EngineVersion (SPEC_FULL.md §4b), mirroring
// the teacher's pack.Engines.Sentrie compatibility field.
package compat

import (
	"github.com/Masterminds/semver/v3"

	"github.com/ruleforge/ruleforge/xerr"
)

// EngineVersion is this build's own semver, checked against a RuleSet's
// EngineVersion constraint at load/execute time.
var EngineVersion = semver.MustParse("1.0.0")

// Check validates constraint (e.g. ">=1.0.0, <2.0.0") against EngineVersion.
// An empty constraint always passes. An unparsable constraint, or one the
// running engine does not satisfy, is a ConfigurationError.
func Check(constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return xerr.NewConfigurationError("invalid engine version constraint %q: %v", constraint, err)
	}
	if !c.Check(EngineVersion) {
		return xerr.NewConfigurationError("engine version %s does not satisfy rule set constraint %q", EngineVersion, constraint)
	}
	return nil
}
