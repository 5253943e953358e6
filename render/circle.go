package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/jloeber/ipmapper/geo"
	"github.com/jloeber/ipmapper/radius"
)

// Order defines a sequence circles are drawn in. Fills are blended, so
// overlaps depend on it.
type Order int

const (
	// RadiusDesc draws large circles first so they do not hide small
	// ones. Ties are broken by y, then by x.
	RadiusDesc Order = iota

	// AsIs keeps the order of points.
	AsIs
)

// MaxRadius is the largest radius a circle can have. It is far beyond
// any canvas size, so capped circles still cover the whole map.
const MaxRadius = 1 << 20

// Point is a projected location with its frequency.
type Point struct {
	Pixel geo.Pixel
	Count int
}

// Circle is a circle in integer pixel units.
type Circle struct {
	X      int
	Y      int
	Radius int
}

// Circles converts points to circles with rounded centers and radii.
// Points which cannot be placed on a raster are skipped.
func Circles(points []Point, policy radius.Policy, order Order) []Circle {
	circles := make([]Circle, 0, len(points))

	for _, point := range points {
		if !finite(point.Pixel.X) || !finite(point.Pixel.Y) {
			log.WithFields(log.Fields{
				"x":     point.Pixel.X,
				"y":     point.Pixel.Y,
				"count": point.Count,
			}).Warn("Skip point which has no place on the map.")
			continue
		}

		circles = append(circles, Circle{
			X:      int(math.Round(point.Pixel.X)),
			Y:      int(math.Round(point.Pixel.Y)),
			Radius: int(math.Round(math.Min(policy.Radius(point.Count), MaxRadius))),
		})
	}

	if order == RadiusDesc {
		sort.SliceStable(circles, func(i, j int) bool {
			left, right := circles[i], circles[j]
			switch {
			case left.Radius != right.Radius:
				return left.Radius > right.Radius
			case left.Y != right.Y:
				return left.Y < right.Y
			}
			return left.X < right.X
		})
	}

	return circles
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// disc is an alpha mask of a filled circle, in destination coordinates.
type disc struct {
	center image.Point
	radius int
}

func (d *disc) ColorModel() color.Model {
	return color.AlphaModel
}

func (d *disc) Bounds() image.Rectangle {
	return image.Rect(d.center.X-d.radius, d.center.Y-d.radius,
		d.center.X+d.radius+1, d.center.Y+d.radius+1)
}

func (d *disc) At(x, y int) color.Color {
	xx, yy, rr := x-d.center.X, y-d.center.Y, d.radius
	if xx*xx+yy*yy <= rr*rr {
		return color.Alpha{255}
	}
	return color.Alpha{0}
}
