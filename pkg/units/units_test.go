package units

import (
	"math"
	"testing"
)

func TestVolumeFromTicks(t *testing.T) {
	tests := []struct {
		name          string
		ticks         int64
		ticksPerLiter int64
		want          int64
	}{
		{name: "full liter at default calibration", ticks: 2200, ticksPerLiter: 2200, want: 1000},
		{name: "half liter", ticks: 1100, ticksPerLiter: 2200, want: 500},
		{name: "custom calibration", ticks: 500, ticksPerLiter: 1000, want: 500},
		{name: "zero ticks", ticks: 0, ticksPerLiter: 2200, want: 0},
		{name: "bad calibration falls back to default", ticks: 2200, ticksPerLiter: 0, want: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VolumeFromTicks(tt.ticks, tt.ticksPerLiter); got != tt.want {
				t.Fatalf("VolumeFromTicks(%d, %d) = %d, want %d", tt.ticks, tt.ticksPerLiter, got, tt.want)
			}
		})
	}
}

func TestOunceRoundTrip(t *testing.T) {
	if got := ToOunces(355); math.Abs(got-12.0) > 0.01 {
		t.Fatalf("a can of beer should be ~12oz, got %v", got)
	}
	if got := FromOunces(12.0); got != 355 {
		t.Fatalf("12oz should round to 355mL, got %d", got)
	}
	if got := ToOunces(0); got != 0 {
		t.Fatalf("zero volume should be zero ounces, got %v", got)
	}
}
