package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/scope-view/backend"
	"git.sr.ht/~whereswaldon/scope-view/scope"
)

func TestStepResponse(t *testing.T) {
	c := circuit{R: 1e3, C: 1e-6, Vin: 5}
	type testcase struct {
		name      string
		charge    bool
		beforeOut float64
	}
	for _, tc := range []testcase{
		{name: "charge", charge: true, beforeOut: 0},
		{name: "discharge", charge: false, beforeOut: 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, rows := stepResponse(c, tc.charge, 5e-3, 11)
			if rows[0][0] != -5e-4 {
				t.Errorf("expected capture to start before the step, got %v", rows[0][0])
			}
			if rows[0][2] != tc.beforeOut {
				t.Errorf("expected %v before the step, got %v", tc.beforeOut, rows[0][2])
			}
			// Row 3 is t = -0.5ms + 3*0.55ms = 1.15ms.
			want := 5 * math.Exp(-1.15)
			if tc.charge {
				want = 5 * (1 - math.Exp(-1.15))
			}
			if math.Abs(rows[3][2]-want) > 1e-9 {
				t.Errorf("expected %v at 1.15ms, got %v", want, rows[3][2])
			}
		})
	}
}

func TestLowpassResponse(t *testing.T) {
	c := circuit{R: 1e3, C: 1e-6}
	fc := c.cutoff()
	_, rows := lowpassResponse(c, fc/10, fc*10, 3)
	if math.Abs(rows[1][0]-fc) > 1e-9*fc {
		t.Fatalf("expected the middle point at the cutoff %v, got %v", fc, rows[1][0])
	}
	if math.Abs(rows[1][1]+10*math.Log10(2)) > 1e-9 {
		t.Errorf("expected -3 dB at cutoff, got %v", rows[1][1])
	}
	if math.Abs(rows[1][2]+45) > 1e-9 {
		t.Errorf("expected -45 degrees at cutoff, got %v", rows[1][2])
	}
}

func TestOutputLoads(t *testing.T) {
	c := circuit{R: 1e3, C: 1e-6, Vin: 5}
	type testcase struct {
		name     string
		headings []string
		rows     [][]float64
		mode     scope.ViewMode
	}
	h1, r1 := stepResponse(c, true, 5e-3, 100)
	h2, r2 := lowpassResponse(c, 10, 1e5, 50)
	for _, tc := range []testcase{
		{name: "transient", headings: h1, rows: r1, mode: scope.Transient},
		{name: "bode", headings: h2, rows: r2, mode: scope.FrequencyResponse},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeCSV(csv.NewWriter(&buf), tc.headings, tc.rows); err != nil {
				t.Fatalf("expected csv, got: %v", err)
			}
			res := backend.Load(tc.name, &buf)
			if res.Err != nil {
				t.Fatalf("expected the generated csv to load, got: %v", res.Err)
			}
			if res.Dataset.RowCount() != len(tc.rows) {
				t.Errorf("expected %d rows, got %d", len(tc.rows), res.Dataset.RowCount())
			}
			if got := scope.Classify(res.Dataset.Headings()).Mode; got != tc.mode {
				t.Errorf("expected %s, got %s", tc.mode, got)
			}
		})
	}
}
