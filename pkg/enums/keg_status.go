package enums

import (
	"fmt"
	"strings"
)

// KegStatus describes tap availability.
type KegStatus string

const (
	KegStatusOnline     KegStatus = "online"
	KegStatusOffline    KegStatus = "offline"
	KegStatusComingSoon KegStatus = "coming-soon"
)

var validKegStatuses = []KegStatus{
	KegStatusOnline,
	KegStatusOffline,
	KegStatusComingSoon,
}

// String implements fmt.Stringer.
func (k KegStatus) String() string {
	return string(k)
}

// IsValid reports whether the value is known.
func (k KegStatus) IsValid() bool {
	for _, candidate := range validKegStatuses {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseKegStatus converts raw input into a KegStatus.
func ParseKegStatus(value string) (KegStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validKegStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid keg status %q", value)
}
