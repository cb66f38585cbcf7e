package scope

import (
	"math"
	"testing"
)

func TestComputeGrid(t *testing.T) {
	type testcase struct {
		name         string
		x, y         Range
		zeroX, zeroY bool
	}
	for _, tc := range []testcase{
		{
			name:  "zero inside both",
			x:     Range{Min: -5, Max: 5},
			y:     Range{Min: -4, Max: 4},
			zeroX: true,
			zeroY: true,
		},
		{
			name: "zero outside",
			x:    Range{Min: 1, Max: 2},
			y:    Range{Min: 0.5, Max: 8.5},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := ComputeGrid(tc.x, tc.y)
			if len(g.MajorX) != 11 || len(g.MajorY) != 9 {
				t.Errorf("expected 11 by 9 major lines, got %d by %d", len(g.MajorX), len(g.MajorY))
			}
			if len(g.MinorX) != 40 || len(g.MinorY) != 32 {
				t.Errorf("expected 40 by 32 minor lines, got %d by %d", len(g.MinorX), len(g.MinorY))
			}
			if g.MajorX[0] != tc.x.Min || math.Abs(g.MajorX[10]-tc.x.Max) > 1e-12 {
				t.Errorf("expected majors to span %v, got %v", tc.x, g.MajorX)
			}
			step := tc.x.Span() / 10
			if math.Abs(g.MinorX[0]-(tc.x.Min+step/5)) > 1e-12 {
				t.Errorf("expected first minor a fifth of a division in, got %v", g.MinorX[0])
			}
			if g.ZeroX != tc.zeroX || g.ZeroY != tc.zeroY {
				t.Errorf("expected zero lines %v/%v, got %v/%v", tc.zeroX, tc.zeroY, g.ZeroX, g.ZeroY)
			}
		})
	}
}

func TestComputeGridDegenerate(t *testing.T) {
	g := ComputeGrid(Range{Min: 1, Max: 1}, Range{Min: -1, Max: 1})
	if len(g.MajorX) != 0 || g.ZeroX {
		t.Errorf("expected no x lines for an empty range, got %v", g.MajorX)
	}
	if len(g.MajorY) != 9 {
		t.Errorf("expected y lines regardless, got %d", len(g.MajorY))
	}
}

func TestComputeLogGrid(t *testing.T) {
	g := ComputeLogGrid(Range{Min: 10, Max: 1000}, Range{Min: -40, Max: 0})
	want := []float64{10, 100, 1000}
	if len(g.MajorX) != len(want) {
		t.Fatalf("expected majors %v, got %v", want, g.MajorX)
	}
	for i := range want {
		if g.MajorX[i] != want[i] {
			t.Errorf("expected major %v, got %v", want[i], g.MajorX[i])
		}
	}
	if len(g.MinorX) != 16 {
		t.Errorf("expected 16 minor lines, got %d: %v", len(g.MinorX), g.MinorX)
	}
	if !g.ZeroY || g.ZeroX {
		t.Errorf("expected only a zero gain line, got %v/%v", g.ZeroX, g.ZeroY)
	}
	if g := ComputeLogGrid(Range{Min: 0, Max: 10}, Range{Min: 0, Max: 1}); len(g.MajorX) != 0 {
		t.Errorf("expected no log lines from zero, got %v", g.MajorX)
	}
}

func TestDecimate(t *testing.T) {
	const n = 10000
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = math.Sin(float64(i) / 100)
	}
	ys[4321] = 50
	ys[8765] = -50
	dx, dy := Decimate(nil, nil, xs, ys, 200)
	if len(dx) > 200 || len(dx) != len(dy) {
		t.Fatalf("expected at most 200 paired points, got %d and %d", len(dx), len(dy))
	}
	var sawMax, sawMin bool
	for i := range dx {
		if i > 0 && dx[i] <= dx[i-1] {
			t.Errorf("expected increasing x, got %v after %v", dx[i], dx[i-1])
		}
		sawMax = sawMax || dy[i] == 50
		sawMin = sawMin || dy[i] == -50
	}
	if !sawMax || !sawMin {
		t.Errorf("expected spikes to survive decimation")
	}

	small := []float64{1, 2, 3}
	dx, _ = Decimate(dx, dy, small, small, 200)
	if len(dx) != 3 {
		t.Errorf("expected short input copied, got %v", dx)
	}
}
