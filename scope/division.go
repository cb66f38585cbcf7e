package scope

import (
	"math"
	"strings"
)

const (
	// ScreenDivisionsX is the number of horizontal divisions on screen.
	ScreenDivisionsX = 10
	// ScreenDivisionsY is the number of vertical divisions on screen.
	ScreenDivisionsY = 8
	// MinorPerDivision is the number of minor grid steps in one division.
	MinorPerDivision = 5

	// fitMargin is the share of the screen the whole capture should fill
	// when the time division is picked automatically.
	fitMargin = 0.8
)

// Division is a named scale factor for one grid division, in seconds or
// volts.
type Division struct {
	Label string
	Value float64
}

var TimeDivisions = []Division{
	{"1 ns/div", 1e-9},
	{"10 ns/div", 10e-9},
	{"25 ns/div", 25e-9},
	{"100 ns/div", 100e-9},
	{"1 µs/div", 1e-6},
	{"10 µs/div", 10e-6},
	{"25 µs/div", 25e-6},
	{"50 µs/div", 50e-6},
	{"100 µs/div", 100e-6},
	{"1 ms/div", 1e-3},
	{"10 ms/div", 10e-3},
	{"25 ms/div", 25e-3},
	{"50 ms/div", 50e-3},
	{"100 ms/div", 100e-3},
	{"1 s/div", 1},
}

var VoltDivisions = []Division{
	{"1 mV/div", 1e-3},
	{"10 mV/div", 10e-3},
	{"25 mV/div", 25e-3},
	{"50 mV/div", 50e-3},
	{"100 mV/div", 100e-3},
	{"1 V/div", 1},
	{"2 V/div", 2},
	{"5 V/div", 5},
	{"10 V/div", 10},
}

const (
	// DefaultTimeDivision indexes 1 ms/div.
	DefaultTimeDivision = 9
	// DefaultVoltDivision indexes 1 V/div.
	DefaultVoltDivision = 5
)

// ParseTimeDivision returns the catalog index for label. Unknown labels
// yield DefaultTimeDivision and a *ConfigError.
func ParseTimeDivision(label string) (int, error) {
	return parseDivision(TimeDivisions, label, DefaultTimeDivision)
}

// ParseVoltDivision returns the catalog index for label. Unknown labels
// yield DefaultVoltDivision and a *ConfigError.
func ParseVoltDivision(label string) (int, error) {
	return parseDivision(VoltDivisions, label, DefaultVoltDivision)
}

func parseDivision(catalog []Division, label string, fallback int) (int, error) {
	want := normalizeLabel(label)
	for i, d := range catalog {
		if normalizeLabel(d.Label) == want {
			return i, nil
		}
	}
	return fallback, &ConfigError{Label: label, Fallback: catalog[fallback].Label}
}

// normalizeLabel lets "1ms", "1 ms/div" and "1 us/div" name the same entry.
func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.TrimSuffix(label, "/div")
	label = strings.ReplaceAll(label, " ", "")
	label = strings.ReplaceAll(label, "µ", "u")
	label = strings.ReplaceAll(label, "μ", "u")
	return label
}

func clampIndex(catalog []Division, i int) int {
	return clamp(i, 0, len(catalog)-1)
}

// AutoSelectTimeDivision picks the smallest catalog division that shows a
// capture of the given duration with a 20% margin. A zero duration selects
// the default; a duration too long for the catalog selects the largest entry.
func AutoSelectTimeDivision(duration float64) int {
	if duration <= 0 || math.IsNaN(duration) {
		return DefaultTimeDivision
	}
	needed := duration / (ScreenDivisionsX * fitMargin)
	for i, d := range TimeDivisions {
		if d.Value >= needed*(1-1e-9) {
			return i
		}
	}
	return len(TimeDivisions) - 1
}
