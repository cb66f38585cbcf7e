package scope

import "math"

// Grid holds gridline positions in data coordinates.
type Grid struct {
	MajorX, MinorX []float64
	MajorY, MinorY []float64
	// ZeroX reports a bold vertical line at x == 0, ZeroY a bold horizontal
	// line at y == 0.
	ZeroX, ZeroY bool
}

// ComputeGrid places ScreenDivisionsX by ScreenDivisionsY major divisions
// across the given limits, with MinorPerDivision subdivisions each. It
// depends only on the limits, never on sample data.
func ComputeGrid(x, y Range) Grid {
	g := Grid{}
	g.MajorX, g.MinorX = linearLines(x, ScreenDivisionsX)
	g.MajorY, g.MinorY = linearLines(y, ScreenDivisionsY)
	g.ZeroX = x.Span() > 0 && x.Contains(0)
	g.ZeroY = y.Span() > 0 && y.Contains(0)
	return g
}

func linearLines(r Range, divisions int) (major, minor []float64) {
	if r.Span() <= 0 {
		return nil, nil
	}
	step := r.Span() / float64(divisions)
	major = make([]float64, 0, divisions+1)
	for k := 0; k <= divisions; k++ {
		major = append(major, r.Min+float64(k)*step)
	}
	minor = make([]float64, 0, divisions*(MinorPerDivision-1))
	for k := 0; k < divisions*MinorPerDivision; k++ {
		if k%MinorPerDivision == 0 {
			continue
		}
		minor = append(minor, r.Min+float64(k)*step/MinorPerDivision)
	}
	return major, minor
}

// ComputeLogGrid lays a logarithmic grid on x (decades as majors, 2..9 of
// each decade as minors) and a linear grid on y. Non-positive x bounds yield
// no x lines.
func ComputeLogGrid(x, y Range) Grid {
	g := Grid{}
	g.MajorY, g.MinorY = linearLines(y, ScreenDivisionsY)
	g.ZeroY = y.Span() > 0 && y.Contains(0)
	if x.Min <= 0 || x.Max <= x.Min {
		return g
	}
	lo := int(floor(math.Log10(x.Min)))
	hi := int(ceil(math.Log10(x.Max)))
	for d := lo; d <= hi; d++ {
		decade := math.Pow(10, float64(d))
		if x.Contains(decade) {
			g.MajorX = append(g.MajorX, decade)
		}
		for m := 2; m <= 9; m++ {
			if v := float64(m) * decade; x.Contains(v) {
				g.MinorX = append(g.MinorX, v)
			}
		}
	}
	return g
}
