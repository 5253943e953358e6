// Package projection maps geographic coordinates onto raster canvases.
package projection

import "math"

const (
	// WGS84SemiMajorAxis is the equatorial radius of the WGS84 ellipsoid
	// in meters.
	WGS84SemiMajorAxis = 6378137.0

	robinsonFXC   = 0.8487
	robinsonFYC   = 1.3523
	robinsonC1    = 11.45915590261646417544
	robinsonRC1   = 0.08726646259971647884
	robinsonNodes = 18
	robinsonEps   = 1e-15
)

type robinsonNode struct {
	c0, c1, c2, c3 float32
}

func (n robinsonNode) value(z float64) float64 {
	return float64(n.c0) + z*(float64(n.c1)+z*(float64(n.c2)+z*float64(n.c3)))
}

// Interpolation nodes for every 5 degrees of latitude. They are stored
// in single precision on purpose: results have to match what PROJ
// produces for the bundled maps bit by bit.
var robinsonX = [robinsonNodes + 1]robinsonNode{
	{1.0, 2.2199e-17, -7.15515e-05, 3.1103e-06},
	{0.9986, -0.000482243, -2.4897e-05, -1.3309e-06},
	{0.9954, -0.00083103, -4.48605e-05, -9.86701e-07},
	{0.99, -0.00135364, -5.9661e-05, 3.6777e-06},
	{0.9822, -0.00167442, -4.49547e-06, -5.72411e-06},
	{0.973, -0.00214868, -9.03571e-05, 1.8736e-08},
	{0.96, -0.00305085, -9.00761e-05, 1.64917e-06},
	{0.9427, -0.00382792, -6.53386e-05, -2.6154e-06},
	{0.9216, -0.00467746, -0.00010457, 4.81243e-06},
	{0.8962, -0.00536223, -3.23831e-05, -5.43432e-06},
	{0.8679, -0.00609363, -0.000113898, 3.32484e-06},
	{0.835, -0.00698325, -6.40253e-05, 9.34959e-07},
	{0.7986, -0.00755338, -5.00009e-05, 9.35324e-07},
	{0.7597, -0.00798324, -3.5971e-05, -2.27626e-06},
	{0.7186, -0.00851367, -7.01149e-05, -8.6303e-06},
	{0.6732, -0.00986209, -0.000199569, 1.91974e-05},
	{0.6213, -0.010418, 8.83923e-05, 6.24051e-06},
	{0.5722, -0.00906601, 0.000182, 6.24051e-06},
	{0.5322, -0.00677797, 0.000275608, 6.24051e-06},
}

var robinsonY = [robinsonNodes + 1]robinsonNode{
	{-5.20417e-18, 0.0124, 1.21431e-18, -8.45284e-11},
	{0.062, 0.0124, -1.26793e-09, 4.22642e-10},
	{0.124, 0.0124, 5.07171e-09, -1.60604e-09},
	{0.186, 0.0123999, -1.90189e-08, 6.00152e-09},
	{0.248, 0.0124002, 7.10039e-08, -2.24e-08},
	{0.31, 0.0123992, -2.64997e-07, 8.35986e-08},
	{0.372, 0.0124029, 9.88983e-07, -3.11994e-07},
	{0.434, 0.0123893, -3.69093e-06, -4.35621e-07},
	{0.4958, 0.0123198, -1.02252e-05, -3.45523e-07},
	{0.5571, 0.0121916, -1.54081e-05, -5.82288e-07},
	{0.6176, 0.0119938, -2.41424e-05, -5.25327e-07},
	{0.6769, 0.011713, -3.20223e-05, -5.16405e-07},
	{0.7346, 0.0113541, -3.97684e-05, -6.09052e-07},
	{0.7903, 0.0109107, -4.89042e-05, -1.04739e-06},
	{0.8435, 0.0103431, -6.4615e-05, -1.40374e-09},
	{0.8936, 0.00969686, -6.4636e-05, -8.547e-06},
	{0.9394, 0.00840947, -0.000192841, -4.2106e-06},
	{0.9761, 0.00616527, -0.000256, -4.2106e-06},
	{1.0, 0.00328947, -0.000319159, -4.2106e-06},
}

// Transformer converts geographic degrees into planar meters with the
// origin in the center of the map.
type Transformer interface {
	Forward(latitude, longitude float64) (x, y float64)
}

// Robinson is a spherical Robinson projection.
type Robinson struct {
	// A is a radius of the sphere in meters.
	A float64
	// Lon0 is a central meridian in degrees.
	Lon0 float64
}

// Forward projects a point. NaN input gives NaN output.
func (r Robinson) Forward(latitude, longitude float64) (float64, float64) {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return math.NaN(), math.NaN()
	}

	phi := latitude * math.Pi / 180
	lam := adjustLongitude((longitude - r.Lon0) * math.Pi / 180)

	dphi := math.Abs(phi)
	idx := int(math.Floor(dphi*robinsonC1 + robinsonEps))
	if idx < 0 {
		idx = 0
	} else if idx >= robinsonNodes {
		idx = robinsonNodes
	}
	dphi = (dphi - robinsonRC1*float64(idx)) * 180 / math.Pi

	x := robinsonX[idx].value(dphi) * robinsonFXC * lam
	y := robinsonY[idx].value(dphi) * robinsonFYC
	if phi < 0 {
		y = -y
	}

	return x * r.A, y * r.A
}

// Extents returns half width and half height of the projected world in
// meters.
func (r Robinson) Extents() (float64, float64) {
	halfWidth, _ := Robinson{A: r.A}.Forward(0, 180)
	_, halfHeight := Robinson{A: r.A}.Forward(90, 0)

	return halfWidth, halfHeight
}

// adjustLongitude wraps longitude in radians into [-pi, pi].
func adjustLongitude(lam float64) float64 {
	if math.Abs(lam) <= math.Pi {
		return lam
	}

	return lam - 2*math.Pi*math.Floor((lam+math.Pi)/(2*math.Pi))
}
