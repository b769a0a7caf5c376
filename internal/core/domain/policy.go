package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// UnknownFrameworkPolicy decides what happens to a package whose install framework was never recorded.
type UnknownFrameworkPolicy int

const (
	// PolicyCompare reinstalls only if the new framework matches none of the package's frameworks.
	PolicyCompare UnknownFrameworkPolicy = iota
	// PolicyAlways reinstalls every framework-scoped package.
	PolicyAlways
	// PolicyNever leaves the package alone.
	PolicyNever
)

// String returns the config name of the policy.
func (p UnknownFrameworkPolicy) String() string {
	switch p {
	case PolicyAlways:
		return "always"
	case PolicyNever:
		return "never"
	default:
		return "compare"
	}
}

// ParseUnknownFrameworkPolicy parses a policy name. The empty string selects PolicyCompare.
func ParseUnknownFrameworkPolicy(s string) (UnknownFrameworkPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compare":
		return PolicyCompare, nil
	case "always":
		return PolicyAlways, nil
	case "never":
		return PolicyNever, nil
	default:
		return PolicyCompare, zerr.With(ErrInvalidPolicy, "policy", s)
	}
}
