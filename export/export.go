// Package export renders a computed scope.Frame without a window: static
// images through gonum/plot and interactive HTML through go-echarts.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"git.sr.ht/~whereswaldon/scope-view/scope"
)

type Format string

const (
	PNG  Format = "png"
	SVG  Format = "svg"
	PDF  Format = "pdf"
	HTML Format = "html"
)

var Formats = []Format{PNG, SVG, PDF, HTML}

// ParseFormat accepts a format name, with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if f == "htm" {
		f = HTML
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Options sizes the output. HTML ignores them.
type Options struct {
	Width, Height vg.Length
}

func DefaultOptions() Options {
	return Options{Width: 20 * vg.Centimeter, Height: 12 * vg.Centimeter}
}

// Render writes f to w in the given format.
func Render(w io.Writer, f scope.Frame, format Format, opt Options) error {
	if opt.Width <= 0 || opt.Height <= 0 {
		opt = DefaultOptions()
	}
	switch format {
	case HTML:
		return renderHTML(w, f)
	case PNG, SVG, PDF:
		return renderPlot(w, f, format, opt)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
