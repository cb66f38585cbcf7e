package scope

import (
	"math"

	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

// Range is a closed interval in data coordinates.
type Range struct {
	Min, Max float64
}

func (r Range) Span() float64 { return r.Max - r.Min }

func (r Range) Mid() float64 { return r.Min + r.Span()/2 }

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// At returns the value at fraction f of the range.
func (r Range) At(f float64) float64 { return r.Min + r.Span()*f }

// Fraction is the inverse of At. A degenerate range maps everything to 0.
func (r Range) Fraction(v float64) float64 {
	if r.Span() == 0 {
		return 0
	}
	return (v - r.Min) / r.Span()
}

// Scale divides both bounds by s.
func (r Range) Scale(s float64) Range {
	return Range{Min: r.Min / s, Max: r.Max / s}
}
