// Package radius converts frequencies into circle radii.
package radius

import "math"

// MinRadius is the smallest radius any policy returns.
const MinRadius = 2.0

// Policy maps a non-negative count to a radius in pixels. Policies are
// monotonically non-decreasing.
type Policy interface {
	Radius(count int) float64
}

// Linear grows radius by 1 pixel per occurrence.
type Linear struct {
	Offset float64
}

func (l Linear) Radius(count int) float64 {
	return clamp(l.Offset + float64(nonNegative(count)))
}

// Logarithmic keeps large counts from covering whole continents.
type Logarithmic struct {
	Min   float64
	Scale float64
}

func (l Logarithmic) Radius(count int) float64 {
	return clamp(l.Min + l.Scale*math.Log1p(float64(nonNegative(count))))
}

// Capped limits radius of the wrapped policy.
type Capped struct {
	Policy Policy
	Max    float64
}

func (c Capped) Radius(count int) float64 {
	return clamp(math.Min(c.Policy.Radius(count), c.Max))
}

// NewLinear returns the default policy: count + 2.
func NewLinear() Linear {
	return Linear{Offset: MinRadius}
}

func nonNegative(count int) int {
	if count < 0 {
		return 0
	}

	return count
}

func clamp(radius float64) float64 {
	if math.IsNaN(radius) || radius < MinRadius {
		return MinRadius
	}

	return radius
}
