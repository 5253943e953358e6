package projection

import (
	"github.com/juju/errors"

	"github.com/jloeber/ipmapper/geo"
)

// Canvas is a pixel geometry of a base map. Margins are the blank space
// between image borders and the world outline.
type Canvas struct {
	Width   int
	Height  int
	MarginX int
	MarginY int
}

// Extenter is a transformer which knows its own half extents.
type Extenter interface {
	Extents() (halfWidth, halfHeight float64)
}

// Engine fits projected meters into a canvas with an affine transform.
// It is immutable and safe for concurrent usage.
type Engine struct {
	transformer Transformer
	canvas      Canvas
	halfWidth   float64
	halfHeight  float64
	scaleX      float64
	scaleY      float64
}

// Project maps a geographic coordinate to a raster pixel. Fractional
// pixels are kept; rounding is a business of a renderer.
func (e *Engine) Project(coord geo.Coordinate) geo.Pixel {
	px, py := e.transformer.Forward(coord.Latitude, coord.Longitude)

	return geo.Pixel{
		X: (px+e.halfWidth)/e.scaleX + float64(e.canvas.MarginX),
		Y: (py-e.halfHeight)/e.scaleY + float64(e.canvas.MarginY),
	}
}

// NewEngine creates a new engine. If half extents are 0, they are asked
// from the transformer.
func NewEngine(transformer Transformer, canvas Canvas, halfWidth, halfHeight float64) (*Engine, error) {
	if halfWidth == 0 || halfHeight == 0 {
		ext, ok := transformer.(Extenter)
		if !ok {
			return nil, errors.New("Cannot derive projection extents")
		}
		derivedWidth, derivedHeight := ext.Extents()
		if halfWidth == 0 {
			halfWidth = derivedWidth
		}
		if halfHeight == 0 {
			halfHeight = derivedHeight
		}
	}

	if halfWidth <= 0 || halfHeight <= 0 {
		return nil, errors.Errorf("Incorrect projection extents %fx%f", halfWidth, halfHeight)
	}

	drawWidth := canvas.Width - 2*canvas.MarginX
	drawHeight := canvas.Height - 2*canvas.MarginY
	if drawWidth <= 0 || drawHeight <= 0 {
		return nil, errors.Errorf("Margins leave no space on %dx%d canvas",
			canvas.Width, canvas.Height)
	}

	return &Engine{
		transformer: transformer,
		canvas:      canvas,
		halfWidth:   halfWidth,
		halfHeight:  halfHeight,
		scaleX:      2 * halfWidth / float64(drawWidth),
		scaleY:      -2 * halfHeight / float64(drawHeight),
	}, nil
}
