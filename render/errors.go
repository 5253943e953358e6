package render

import "errors"

var (
	// ErrMissingBaseMap is returned if a base map image cannot be found.
	ErrMissingBaseMap = errors.New("base map is missing")

	// ErrSizeMismatch is returned if a base map does not fit the canvas
	// the projection was configured for.
	ErrSizeMismatch = errors.New("base map size does not match canvas")

	// ErrUnknownColor is returned for color values which are neither
	// SVG color names nor hex triplets.
	ErrUnknownColor = errors.New("unknown color")
)
