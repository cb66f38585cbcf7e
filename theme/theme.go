// Package theme holds the fixed light and dark palettes of the viewer.
package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// Variant selects a palette.
type Variant uint8

const (
	Light Variant = iota
	Dark
)

func (v Variant) String() string {
	switch v {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ParseVariant accepts "light" or "dark" in any case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown theme %q", s)
}

// Palette lists every color the viewer draws with.
type Palette struct {
	Background     color.NRGBA
	Foreground     color.NRGBA
	PlotBackground color.NRGBA
	Grid           color.NRGBA
	// Lines are assigned to channels in order, wrapping around.
	Lines   []color.NRGBA
	CursorX color.NRGBA
	CursorY color.NRGBA
}

// Line returns the color of channel i.
func (p Palette) Line(i int) color.NRGBA {
	if len(p.Lines) == 0 {
		return p.Foreground
	}
	if i < 0 {
		i = -i
	}
	return p.Lines[i%len(p.Lines)]
}

func rgb(hex uint32) color.NRGBA {
	return color.NRGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var palettes = map[Variant]Palette{
	Light: {
		Background:     rgb(0xd3d3d3),
		Foreground:     rgb(0x000000),
		PlotBackground: rgb(0xf0f0f0),
		Grid:           rgb(0x808080),
		Lines: []color.NRGBA{
			rgb(0x0000ff), // blue
			rgb(0xffa500), // orange
			rgb(0x008000), // green
			rgb(0xff0000), // red
			rgb(0x800080), // purple
			rgb(0xa52a2a), // brown
			rgb(0xffc0cb), // pink
			rgb(0x808080), // gray
		},
		CursorX: rgb(0x006400),
		CursorY: rgb(0x8b008b),
	},
	Dark: {
		Background:     rgb(0x2e2e2e),
		Foreground:     rgb(0xffffff),
		PlotBackground: rgb(0x1e1e1e),
		Grid:           rgb(0x444444),
		Lines: []color.NRGBA{
			rgb(0x00ffff), // cyan
			rgb(0x00ff00), // lime
			rgb(0xff00ff), // magenta
			rgb(0xffff00), // yellow
			rgb(0xffa500), // orange
			rgb(0xffffff), // white
			rgb(0x800080), // purple
			rgb(0xd3d3d3), // lightgray
		},
		CursorX: rgb(0xadd8e6),
		CursorY: rgb(0xf08080),
	},
}

// Lookup returns the palette for v. Unknown variants get the light palette.
func Lookup(v Variant) Palette {
	p, ok := palettes[v]
	if !ok {
		p = palettes[Light]
	}
	p.Lines = append([]color.NRGBA(nil), p.Lines...)
	return p
}
