package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"golang.org/x/image/colornames"
)

// Palette is a pair of colors to draw circles with: stroke is a halo
// around the fill.
type Palette struct {
	Stroke color.Color
	Fill   color.Color
}

// NewPalette parses both colors of the palette.
func NewPalette(stroke, fill string) (Palette, error) {
	strokeColor, err := ParseColor(stroke)
	if err != nil {
		return Palette{}, errors.Annotate(err, "Cannot parse stroke color")
	}

	fillColor, err := ParseColor(fill)
	if err != nil {
		return Palette{}, errors.Annotate(err, "Cannot parse fill color")
	}

	return Palette{Stroke: strokeColor, Fill: fillColor}, nil
}

// ParseColor understands SVG 1.1 color names (orange, red, etc.) and
// hex notations #rgb, #rrggbb and #rrggbbaa.
func ParseColor(value string) (color.Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if !strings.HasPrefix(value, "#") {
		if named, ok := colornames.Map[value]; ok {
			return named, nil
		}
		return nil, errors.Annotatef(ErrUnknownColor, "color %q", value)
	}

	hex := value[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, errors.Annotatef(ErrUnknownColor, "color %q", value)
	}

	rgba, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, errors.Annotatef(ErrUnknownColor, "color %q", value)
	}

	// hex notation is not alpha-premultiplied
	return color.NRGBA{
		R: uint8(rgba >> 24),
		G: uint8(rgba >> 16),
		B: uint8(rgba >> 8),
		A: uint8(rgba),
	}, nil
}
