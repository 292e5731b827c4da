package bac

import (
	"time"

	"github.com/kegworks/taproom-backend/pkg/enums"
)

// Widmark-style body water fractions and the weight of ethanol in one US
// fluid ounce (29.57 mL at 0.79 g/mL).
const (
	waterFracMale   = 0.58
	waterFracFemale = 0.49

	ethanolGramsPerOunce = 29.57 * 0.79
)

// Instant estimates the immediate BAC contribution of a single drink, as a
// gram-percent. Returns 0 for non-positive weight or volume rather than
// producing a nonsense estimate.
func Instant(gender enums.Gender, weightKg, abvPct, ounces float64) float64 {
	if weightKg <= 0 || ounces <= 0 || abvPct <= 0 {
		return 0
	}

	waterFrac := waterFracFemale
	if gender == enums.GenderMale {
		waterFrac = waterFracMale
	}

	// grams of body water vs grams of ingested ethanol
	waterGrams := weightKg * 1000 * waterFrac
	alcoholGrams := ounces * ethanolGramsPerOunce * (abvPct / 100)

	gramPct := alcoholGrams / waterGrams * 100
	return gramPct * 0.806
}

// Decay applies linear alcohol elimination to a prior estimate. The result
// never goes below zero, and a non-positive elapsed duration leaves the
// estimate unchanged.
func Decay(value float64, elapsed time.Duration, ratePerHour float64) float64 {
	if elapsed <= 0 {
		if value < 0 {
			return 0
		}
		return value
	}
	decayed := value - ratePerHour*elapsed.Hours()
	if decayed < 0 {
		return 0
	}
	return decayed
}
