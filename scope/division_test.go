package scope

import (
	"errors"
	"testing"
)

func TestParseDivision(t *testing.T) {
	type testcase struct {
		label   string
		parse   func(string) (int, error)
		want    int
		wantErr bool
	}
	for _, tc := range []testcase{
		{label: "1 ms/div", parse: ParseTimeDivision, want: 9},
		{label: "1ms", parse: ParseTimeDivision, want: 9},
		{label: "10 us/div", parse: ParseTimeDivision, want: 5},
		{label: "25 µs/div", parse: ParseTimeDivision, want: 6},
		{label: "2 V/div", parse: ParseVoltDivision, want: 6},
		{label: "100mv", parse: ParseVoltDivision, want: 4},
		{label: "3 ms/div", parse: ParseTimeDivision, want: DefaultTimeDivision, wantErr: true},
		{label: "bogus", parse: ParseVoltDivision, want: DefaultVoltDivision, wantErr: true},
	} {
		t.Run(tc.label, func(t *testing.T) {
			got, err := tc.parse(tc.label)
			if got != tc.want {
				t.Errorf("expected index %d, got %d", tc.want, got)
			}
			if !tc.wantErr {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if ClassOf(err) != ConfigErrorClass {
				t.Errorf("expected config error class, got %v", ClassOf(err))
			}
		})
	}
}

func TestAutoSelectTimeDivision(t *testing.T) {
	type testcase struct {
		name     string
		duration float64
		want     int
	}
	for _, tc := range []testcase{
		{name: "10 ms capture", duration: 0.01, want: 10},
		{name: "8 ms capture fits 1 ms/div exactly", duration: 0.008, want: 9},
		{name: "empty capture", duration: 0, want: DefaultTimeDivision},
		{name: "too long", duration: 100, want: len(TimeDivisions) - 1},
		{name: "tiny", duration: 1e-9, want: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := AutoSelectTimeDivision(tc.duration); got != tc.want {
				t.Errorf("expected %s, got %s", TimeDivisions[tc.want].Label, TimeDivisions[got].Label)
			}
		})
	}
}

func TestAutoSelectIsSmallestFit(t *testing.T) {
	const duration = 0.01
	i := AutoSelectTimeDivision(duration)
	if TimeDivisions[i].Value*8 < duration {
		t.Errorf("expected %s to fit %v s in 8 divisions", TimeDivisions[i].Label, duration)
	}
	if i > 0 && TimeDivisions[i-1].Value*8 >= duration {
		t.Errorf("expected %s to be the smallest fit, but %s also fits", TimeDivisions[i].Label, TimeDivisions[i-1].Label)
	}
}

func TestUnits(t *testing.T) {
	type testcase struct {
		value float64
		time  string
		volts string
	}
	for _, tc := range []testcase{
		{value: 5e-9, time: "ns", volts: "µV"},
		{value: 2e-6, time: "µs", volts: "µV"},
		{value: 0.005, time: "ms", volts: "mV"},
		{value: 2, time: "s", volts: "V"},
		{value: -0.5, time: "s", volts: "mV"},
	} {
		if got := TimeUnitFor(tc.value).Symbol; got != tc.time {
			t.Errorf("expected time unit %s for %v, got %s", tc.time, tc.value, got)
		}
		if got := VoltUnitFor(tc.value).Symbol; got != tc.volts {
			t.Errorf("expected voltage unit %s for %v, got %s", tc.volts, tc.value, got)
		}
	}
	if got := FormatTime(0.005); got != "5 ms" {
		t.Errorf("expected \"5 ms\", got %q", got)
	}
	if got := FormatVolts(2); got != "2 V" {
		t.Errorf("expected \"2 V\", got %q", got)
	}
}
