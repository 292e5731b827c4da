// Package units holds the volume conversion table shared by the metering and
// accounting layers. Canonical volume is the integer milliliter.
//
//	1 US fluid ounce = 29.5735 mL
//	1 liter          = 1000 mL
//	meter default    = 2200 ticks per liter
package units

import "math"

const (
	// MLPerOunce converts milliliters to US fluid ounces.
	MLPerOunce = 29.5735
	// MLPerLiter converts liters to milliliters.
	MLPerLiter = 1000.0
	// DefaultTicksPerLiter is the flow meter calibration used when a tap does
	// not override it.
	DefaultTicksPerLiter int64 = 2200
)

// VolumeFromTicks converts raw meter ticks into milliliters, rounding to the
// nearest milliliter. Non-positive calibrations fall back to the default.
func VolumeFromTicks(ticks, ticksPerLiter int64) int64 {
	if ticksPerLiter <= 0 {
		ticksPerLiter = DefaultTicksPerLiter
	}
	return int64(math.Round(float64(ticks) * MLPerLiter / float64(ticksPerLiter)))
}

// ToOunces converts milliliters to US fluid ounces.
func ToOunces(volumeML int64) float64 {
	return float64(volumeML) / MLPerOunce
}

// FromOunces converts US fluid ounces to milliliters, rounding to the nearest
// milliliter.
func FromOunces(ounces float64) int64 {
	return int64(math.Round(ounces * MLPerOunce))
}
