//go:build proj

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jloeber/ipmapper/config"
	"github.com/jloeber/ipmapper/geo"
)

func TestMakeEnginePROJ(t *testing.T) {
	conf := config.Default()
	conf.Projection.Backend = config.BackendPROJ

	engine, closer, err := makeEngine(conf)
	assert.Nil(t, err)
	defer closer()

	pixel := engine.Project(geo.Coordinate{})
	assert.InDelta(t, pixel.X, 1029, 1e-3)
	assert.InDelta(t, pixel.Y, 525, 1e-3)
}
