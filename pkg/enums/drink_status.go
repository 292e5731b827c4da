package enums

import (
	"fmt"
	"strings"
)

// DrinkStatus marks a pour record as countable or voided.
type DrinkStatus string

const (
	DrinkStatusValid   DrinkStatus = "valid"
	DrinkStatusInvalid DrinkStatus = "invalid"
)

var validDrinkStatuses = []DrinkStatus{
	DrinkStatusValid,
	DrinkStatusInvalid,
}

// String implements fmt.Stringer.
func (d DrinkStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is known.
func (d DrinkStatus) IsValid() bool {
	for _, candidate := range validDrinkStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDrinkStatus converts raw input into a DrinkStatus.
func ParseDrinkStatus(value string) (DrinkStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validDrinkStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid drink status %q", value)
}
