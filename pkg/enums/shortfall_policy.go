package enums

import (
	"fmt"
	"strings"
)

// ShortfallPolicy decides what happens when a pour exceeds all available
// grant capacity.
type ShortfallPolicy string

const (
	// ShortfallPolicyRecord keeps the pour and books the unauthorized
	// remainder as a grantless charge.
	ShortfallPolicyRecord ShortfallPolicy = "record"
	// ShortfallPolicyReject fails the whole pour.
	ShortfallPolicyReject ShortfallPolicy = "reject"
)

var validShortfallPolicies = []ShortfallPolicy{
	ShortfallPolicyRecord,
	ShortfallPolicyReject,
}

// String implements fmt.Stringer.
func (s ShortfallPolicy) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s ShortfallPolicy) IsValid() bool {
	for _, candidate := range validShortfallPolicies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShortfallPolicy converts raw input into a ShortfallPolicy.
func ParseShortfallPolicy(value string) (ShortfallPolicy, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validShortfallPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shortfall policy %q", value)
}
