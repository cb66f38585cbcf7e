package theme

import (
	"image/color"
	"testing"
)

func TestLookupComplete(t *testing.T) {
	for _, v := range []Variant{Light, Dark} {
		t.Run(v.String(), func(t *testing.T) {
			p := Lookup(v)
			named := map[string]color.NRGBA{
				"background":      p.Background,
				"foreground":      p.Foreground,
				"plot background": p.PlotBackground,
				"grid":            p.Grid,
				"cursor x":        p.CursorX,
				"cursor y":        p.CursorY,
			}
			for name, c := range named {
				if c.A != 0xff {
					t.Errorf("expected opaque %s, got %v", name, c)
				}
			}
			if len(p.Lines) != 8 {
				t.Errorf("expected 8 line colors, got %d", len(p.Lines))
			}
			if p.Background == p.Foreground {
				t.Errorf("expected background and foreground to differ")
			}
		})
	}
}

func TestLookupIsolated(t *testing.T) {
	p := Lookup(Dark)
	p.Lines[0] = color.NRGBA{}
	if Lookup(Dark).Lines[0] == (color.NRGBA{}) {
		t.Errorf("expected palette lines to be copied")
	}
}

func TestLineWraps(t *testing.T) {
	p := Lookup(Light)
	if p.Line(8) != p.Line(0) {
		t.Errorf("expected line 8 to reuse line 0, got %v", p.Line(8))
	}
}

func TestParseVariant(t *testing.T) {
	type testcase struct {
		in      string
		want    Variant
		wantErr bool
	}
	for _, tc := range []testcase{
		{in: "light", want: Light},
		{in: " Dark ", want: Dark},
		{in: "solarized", want: Light, wantErr: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseVariant(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("expected error=%v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
