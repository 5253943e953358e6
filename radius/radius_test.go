package radius

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func policies() map[string]Policy {
	return map[string]Policy{
		"linear":      NewLinear(),
		"logarithmic": Logarithmic{Min: 3, Scale: 2.5},
		"capped":      Capped{Policy: NewLinear(), Max: 20},
		"tiny":        Linear{Offset: 0},
	}
}

func TestLinear(t *testing.T) {
	policy := NewLinear()

	assert.InDelta(t, policy.Radius(0), 2, 1e-9)
	assert.InDelta(t, policy.Radius(5), 7, 1e-9)
	assert.InDelta(t, policy.Radius(100), 102, 1e-9)
}

func TestLogarithmic(t *testing.T) {
	policy := Logarithmic{Min: 2, Scale: 1}

	assert.InDelta(t, policy.Radius(0), 2, 1e-9)
	assert.InDelta(t, policy.Radius(1), 2.6931471805599454, 1e-9)
}

func TestCapped(t *testing.T) {
	policy := Capped{Policy: NewLinear(), Max: 10}

	assert.InDelta(t, policy.Radius(5), 7, 1e-9)
	assert.InDelta(t, policy.Radius(500), 10, 1e-9)
}

func TestMinimum(t *testing.T) {
	for name, policy := range policies() {
		assert.True(t, policy.Radius(0) >= MinRadius, name)
		assert.True(t, policy.Radius(-10) >= MinRadius, name)
	}
}

func TestMonotonic(t *testing.T) {
	for name, policy := range policies() {
		previous := policy.Radius(0)
		for count := 1; count < 1000; count++ {
			current := policy.Radius(count)
			assert.True(t, current >= previous, "%s: %d", name, count)
			previous = current
		}
	}
}
