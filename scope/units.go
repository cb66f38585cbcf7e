package scope

import (
	"math"
	"strconv"
)

// Unit is a display prefix: a value v in base units is shown as v/Scale.
type Unit struct {
	Symbol string
	Scale  float64
}

var (
	Nanoseconds  = Unit{"ns", 1e-9}
	Microseconds = Unit{"µs", 1e-6}
	Milliseconds = Unit{"ms", 1e-3}
	Seconds      = Unit{"s", 1}

	Microvolts = Unit{"µV", 1e-6}
	Millivolts = Unit{"mV", 1e-3}
	Volts      = Unit{"V", 1}
)

// TimeUnitFor picks the prefix used to label a time axis whose largest
// absolute value is maxAbs.
func TimeUnitFor(maxAbs float64) Unit {
	maxAbs = math.Abs(maxAbs)
	switch {
	case maxAbs < 1e-8:
		return Nanoseconds
	case maxAbs < 1e-5:
		return Microseconds
	case maxAbs < 1e-2:
		return Milliseconds
	default:
		return Seconds
	}
}

// VoltUnitFor picks the prefix used to label voltages whose largest absolute
// value is maxAbs.
func VoltUnitFor(maxAbs float64) Unit {
	maxAbs = math.Abs(maxAbs)
	switch {
	case maxAbs < 1e-4:
		return Microvolts
	case maxAbs < 1:
		return Millivolts
	default:
		return Volts
	}
}

// In converts a base-unit value into this unit.
func (u Unit) In(v float64) float64 { return v / u.Scale }

// Format renders v (in base units) with three significant digits.
func (u Unit) Format(v float64) string {
	return strconv.FormatFloat(u.In(v), 'g', 3, 64) + " " + u.Symbol
}

// FormatTime formats seconds with the prefix suited to the value itself.
func FormatTime(seconds float64) string {
	return TimeUnitFor(seconds).Format(seconds)
}

// FormatVolts formats volts with the prefix suited to the value itself.
func FormatVolts(volts float64) string {
	return VoltUnitFor(volts).Format(volts)
}
