package providers_test

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jloeber/ipmapper/geo"
	"github.com/jloeber/ipmapper/providers"
)

type CircuitBreakerTestSuite struct {
	suite.Suite

	ip             net.IP
	p              providers.OfflineProvider
	mockedProvider *OfflineProviderMock
}

func (suite *CircuitBreakerTestSuite) SetupTest() {
	suite.ip = net.ParseIP("80.80.81.81")
	suite.mockedProvider = &OfflineProviderMock{}
	suite.p = providers.NewCircuitBreaker(suite.mockedProvider, 1,
		100*time.Millisecond, time.Minute)
}

func (suite *CircuitBreakerTestSuite) TearDownTest() {
	suite.mockedProvider.On("Shutdown").Once()
	suite.p.Shutdown()
	suite.mockedProvider.AssertExpectations(suite.T())
}

func (suite *CircuitBreakerTestSuite) TestOk() {
	coord := geo.Coordinate{Latitude: 56.3287, Longitude: 44.002}
	suite.mockedProvider.On("Lookup", mock.Anything).Return(coord, nil).Times(3)

	for i := 0; i < 3; i++ {
		result, err := suite.p.Lookup(suite.ip)
		suite.NoError(err)
		suite.Equal(result, coord)
	}
}

func (suite *CircuitBreakerTestSuite) TestMissesAreNotFailures() {
	suite.mockedProvider.On("Lookup", mock.Anything).
		Return(geo.Coordinate{}, providers.ErrNoMatch).
		Times(5)

	for i := 0; i < 5; i++ {
		_, err := suite.p.Lookup(suite.ip)
		suite.Equal(errors.Cause(err), providers.ErrNoMatch)
	}
}

func (suite *CircuitBreakerTestSuite) TestOpens() {
	suite.mockedProvider.On("Name").Return("mocked")
	suite.mockedProvider.On("Lookup", mock.Anything).
		Return(geo.Coordinate{}, io.EOF).
		Twice()

	_, err := suite.p.Lookup(suite.ip)
	suite.Equal(err, io.EOF)
	_, err = suite.p.Lookup(suite.ip)
	suite.Equal(err, io.EOF)

	_, err = suite.p.Lookup(suite.ip)
	suite.Equal(err, providers.ErrCircuitBreakerOpened)
}

func (suite *CircuitBreakerTestSuite) TestHalfOpen() {
	coord := geo.Coordinate{Latitude: 56.3287, Longitude: 44.002}

	suite.mockedProvider.On("Name").Return("mocked")
	suite.mockedProvider.On("Lookup", mock.Anything).
		Return(geo.Coordinate{}, io.EOF).
		Twice()
	suite.mockedProvider.On("Lookup", mock.Anything).
		Return(coord, nil).
		Twice()

	suite.p.Lookup(suite.ip) // nolint: errcheck
	suite.p.Lookup(suite.ip) // nolint: errcheck

	time.Sleep(300 * time.Millisecond)

	result, err := suite.p.Lookup(suite.ip)
	suite.NoError(err)
	suite.Equal(result, coord)

	result, err = suite.p.Lookup(suite.ip)
	suite.NoError(err)
	suite.Equal(result, coord)
}

func TestCircuitBreaker(t *testing.T) {
	suite.Run(t, &CircuitBreakerTestSuite{})
}
