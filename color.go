package main

import (
	"image/color"

	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/scope-view/theme"
)

// applyPalette recolors th to match p. Widgets pick the colors up on their
// next layout.
func applyPalette(th *material.Theme, p theme.Palette) {
	th.Palette.Bg = p.Background
	th.Palette.Fg = p.Foreground
	th.Palette.ContrastBg = p.Line(0)
	th.Palette.ContrastFg = contrasting(p.Line(0))
}

// contrasting returns black or white, whichever reads better on c.
func contrasting(c color.NRGBA) color.NRGBA {
	luma := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if luma > 128_000 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
