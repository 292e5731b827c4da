package enums

import (
	"fmt"
	"strings"
)

// GrantStatus tracks the lifecycle of a pour authorization.
type GrantStatus string

const (
	GrantStatusActive  GrantStatus = "active"
	GrantStatusExpired GrantStatus = "expired"
	GrantStatusDeleted GrantStatus = "deleted"
)

var validGrantStatuses = []GrantStatus{
	GrantStatusActive,
	GrantStatusExpired,
	GrantStatusDeleted,
}

// String implements fmt.Stringer.
func (g GrantStatus) String() string {
	return string(g)
}

// IsValid reports whether the value is known.
func (g GrantStatus) IsValid() bool {
	for _, candidate := range validGrantStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGrantStatus converts raw input into a GrantStatus.
func ParseGrantStatus(value string) (GrantStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validGrantStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid grant status %q", value)
}
