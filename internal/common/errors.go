// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Cache errors.
	ErrCacheMiss = errors.New("cache miss")

	// Rule engine errors.
	ErrNoActiveRuleSet = errors.New("no active rule set")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// InvalidInputError reports caller-supplied data that fails validation
// before any derivation work starts: malformed birth details, coordinates
// out of range, or ephemeris positions that cannot be normalized.
type InvalidInputError struct {
	Err   error
	Field string
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid input %q", e.Field)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// NewInvalidInput creates an InvalidInputError for the named field.
func NewInvalidInput(field string, err error) error {
	return &InvalidInputError{Field: field, Err: err}
}

// ConfigurationError reports a missing or contradictory runtime setting,
// such as an unrecognized house system or an empty divisional chart list.
type ConfigurationError struct {
	Err     error
	Setting string
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration %q: %v", e.Setting, e.Err)
	}
	return fmt.Sprintf("configuration %q", e.Setting)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfiguration creates a ConfigurationError for the named setting.
func NewConfiguration(setting string, err error) error {
	return &ConfigurationError{Setting: setting, Err: err}
}

// RuleDefinitionError reports a structurally broken rule: unknown
// predicate vocabulary, an impossible constant, or a cyclic reference
// between named predicate definitions. The rule key locates the offender
// within its rule set.
type RuleDefinitionError struct {
	Err     error
	RuleKey string
}

func (e *RuleDefinitionError) Error() string {
	if e.RuleKey == "" {
		return fmt.Sprintf("rule definition: %v", e.Err)
	}
	return fmt.Sprintf("rule %q: %v", e.RuleKey, e.Err)
}

func (e *RuleDefinitionError) Unwrap() error {
	return e.Err
}

// NewRuleDefinition creates a RuleDefinitionError for the keyed rule.
func NewRuleDefinition(ruleKey string, err error) error {
	return &RuleDefinitionError{RuleKey: ruleKey, Err: err}
}

// ComputationInvariantError reports an internal derivation contradiction
// that valid inputs should never produce, such as a house index outside
// 1..12. It signals a defect, not bad input.
type ComputationInvariantError struct {
	Err       error
	Invariant string
}

func (e *ComputationInvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("computation invariant %q violated: %v", e.Invariant, e.Err)
	}
	return fmt.Sprintf("computation invariant %q violated", e.Invariant)
}

func (e *ComputationInvariantError) Unwrap() error {
	return e.Err
}

// NewComputationInvariant creates a ComputationInvariantError for the
// named invariant.
func NewComputationInvariant(invariant string, err error) error {
	return &ComputationInvariantError{Invariant: invariant, Err: err}
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsRuleDefinition reports whether err is a RuleDefinitionError.
func IsRuleDefinition(err error) bool {
	var target *RuleDefinitionError
	return errors.As(err, &target)
}
