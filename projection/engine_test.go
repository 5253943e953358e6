package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/jloeber/ipmapper/geo"
)

type EngineTestSuite struct {
	suite.Suite

	engine *Engine
}

func (suite *EngineTestSuite) SetupTest() {
	engine, err := NewEngine(Robinson{A: WGS84SemiMajorAxis},
		Canvas{Width: 2058, Height: 1050, MarginX: 8, MarginY: 7},
		17005833.33052523, 8625154.471849944)
	suite.Nil(err)

	suite.engine = engine
}

func (suite *EngineTestSuite) TestCenter() {
	pixel := suite.engine.Project(geo.Coordinate{})

	suite.InDelta(pixel.X, 1029, 1e-6)
	suite.InDelta(pixel.Y, 525, 1e-6)
}

func (suite *EngineTestSuite) TestBorders() {
	west := suite.engine.Project(geo.Coordinate{Longitude: -180})
	east := suite.engine.Project(geo.Coordinate{Longitude: 180})
	north := suite.engine.Project(geo.Coordinate{Latitude: 90})
	south := suite.engine.Project(geo.Coordinate{Latitude: -90})

	suite.InDelta(west.X, 8, 1e-6)
	suite.InDelta(east.X, 2050, 1e-6)
	suite.InDelta(north.Y, 7, 1e-3)
	suite.InDelta(south.Y, 1043, 1e-3)
}

func (suite *EngineTestSuite) TestKnownPoint() {
	pixel := suite.engine.Project(geo.Coordinate{Latitude: 37.4, Longitude: -122.0})

	suite.InDelta(pixel.X, 383.28407590324576, 1e-6)
	suite.InDelta(pixel.Y, 284.7997558684556, 1e-6)
}

func (suite *EngineTestSuite) TestIdempotent() {
	coord := geo.Coordinate{Latitude: 51.5, Longitude: -0.13}

	suite.Equal(suite.engine.Project(coord), suite.engine.Project(coord))
}

func (suite *EngineTestSuite) TestNaN() {
	pixel := suite.engine.Project(geo.Coordinate{Latitude: math.NaN()})

	suite.True(math.IsNaN(pixel.X))
	suite.True(math.IsNaN(pixel.Y))
}

func TestEngine(t *testing.T) {
	suite.Run(t, &EngineTestSuite{})
}

type fixedTransformer struct{}

func (fixedTransformer) Forward(lat, lon float64) (float64, float64) {
	return lon, lat
}

func TestEngineDerivesExtents(t *testing.T) {
	canvas := Canvas{Width: 2058, Height: 1050, MarginX: 8, MarginY: 7}

	engine, err := NewEngine(Robinson{A: WGS84SemiMajorAxis}, canvas, 0, 0)
	assert.Nil(t, err)

	pixel := engine.Project(geo.Coordinate{Longitude: 180})
	assert.InDelta(t, pixel.X, 2050, 1e-6)
}

func TestEngineIncorrectValues(t *testing.T) {
	canvas := Canvas{Width: 100, Height: 50}

	_, err := NewEngine(fixedTransformer{}, canvas, 0, 0)
	assert.NotNil(t, err)

	_, err = NewEngine(fixedTransformer{}, canvas, -1, 10)
	assert.NotNil(t, err)

	_, err = NewEngine(fixedTransformer{}, Canvas{Width: 10, Height: 10, MarginX: 5}, 180, 90)
	assert.NotNil(t, err)
}

func TestEngineAffine(t *testing.T) {
	engine, err := NewEngine(fixedTransformer{}, Canvas{Width: 100, Height: 50}, 180, 90)
	assert.Nil(t, err)

	pixel := engine.Project(geo.Coordinate{Latitude: 90, Longitude: -180})
	assert.InDelta(t, pixel.X, 0, 1e-9)
	assert.InDelta(t, pixel.Y, 0, 1e-9)

	pixel = engine.Project(geo.Coordinate{Latitude: -90, Longitude: 180})
	assert.InDelta(t, pixel.X, 100, 1e-9)
	assert.InDelta(t, pixel.Y, 50, 1e-9)
}
