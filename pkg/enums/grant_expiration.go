package enums

import (
	"fmt"
	"strings"
)

// GrantExpiration names the rule that exhausts a grant.
type GrantExpiration string

const (
	GrantExpirationNone   GrantExpiration = "none"
	GrantExpirationTime   GrantExpiration = "time"
	GrantExpirationVolume GrantExpiration = "volume"
	GrantExpirationDrinks GrantExpiration = "drinks"
)

var validGrantExpirations = []GrantExpiration{
	GrantExpirationNone,
	GrantExpirationTime,
	GrantExpirationVolume,
	GrantExpirationDrinks,
}

// String implements fmt.Stringer.
func (g GrantExpiration) String() string {
	return string(g)
}

// IsValid reports whether the value is known.
func (g GrantExpiration) IsValid() bool {
	for _, candidate := range validGrantExpirations {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGrantExpiration converts raw input into a GrantExpiration.
func ParseGrantExpiration(value string) (GrantExpiration, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validGrantExpirations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid grant expiration %q", value)
}
