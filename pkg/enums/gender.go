package enums

import (
	"fmt"
	"strings"
)

// Gender selects the body-water distribution ratio used by the BAC model.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var validGenders = []Gender{
	GenderMale,
	GenderFemale,
}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is known.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validGenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}
