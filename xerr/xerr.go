// Package xerr defines the three error kinds the engine ever produces,
// mirroring the teacher's struct-per-kind + Wrapf + Is* pattern
// (xerr/runtime.go): a zero-value marker struct per kind, a constructor
// that wraps it with a formatted message via github.com/pkg/errors, and a
// predicate built on errors.Is for callers that need to branch on kind.
package xerr

import "github.com/pkg/errors"

// EvaluationFailure marks an internal exception raised during rule/table
// evaluation. Never thrown — always folded into ExecutionResult.Error.
type EvaluationFailure struct{}

func (EvaluationFailure) Error() string { return "evaluation failure" }

// ConfigurationError marks a caller mistake: duplicate plugin name,
// double-init, init-after-shutdown, a missing fetcher, an unknown adapter
// kind, or a rule set failing its EngineVersion gate. Always returned
// synchronously to the caller — Engine.Execute returns it from its checks
// before evaluation starts (not initialized, EngineVersion gate) — and never
// produced by the evaluator itself.
type ConfigurationError struct{}

func (ConfigurationError) Error() string { return "configuration error" }

// AdapterFailure marks an error surfaced by a cache/audit/notification
// adapter. The orchestrator swallows adapter errors without wrapping them in
// this kind.
type AdapterFailure struct{}

func (AdapterFailure) Error() string { return "adapter failure" }

// NewEvaluationFailure builds a formatted EvaluationFailure.
func NewEvaluationFailure(format string, args ...any) error {
	return errors.Wrapf(EvaluationFailure{}, format, args...)
}

// NewConfigurationError builds a formatted ConfigurationError.
func NewConfigurationError(format string, args ...any) error {
	return errors.Wrapf(ConfigurationError{}, format, args...)
}

// NewAdapterFailure builds a formatted AdapterFailure.
func NewAdapterFailure(format string, args ...any) error {
	return errors.Wrapf(AdapterFailure{}, format, args...)
}

// IsEvaluationFailure reports whether err (or anything it wraps) is an
// EvaluationFailure.
func IsEvaluationFailure(err error) bool { return errors.Is(err, EvaluationFailure{}) }

// IsConfigurationError reports whether err (or anything it wraps) is a
// ConfigurationError.
func IsConfigurationError(err error) bool { return errors.Is(err, ConfigurationError{}) }

// IsAdapterFailure reports whether err (or anything it wraps) is an
// AdapterFailure.
func IsAdapterFailure(err error) bool { return errors.Is(err, AdapterFailure{}) }
