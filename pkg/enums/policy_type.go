package enums

import (
	"fmt"
	"strings"
)

// PolicyType categorizes pricing policies.
type PolicyType string

const (
	PolicyTypeFree      PolicyType = "free"
	PolicyTypeFixedCost PolicyType = "fixed-cost"
)

var validPolicyTypes = []PolicyType{
	PolicyTypeFree,
	PolicyTypeFixedCost,
}

// String implements fmt.Stringer.
func (p PolicyType) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PolicyType) IsValid() bool {
	for _, candidate := range validPolicyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePolicyType converts raw input into a PolicyType.
func ParsePolicyType(value string) (PolicyType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPolicyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid policy type %q", value)
}
