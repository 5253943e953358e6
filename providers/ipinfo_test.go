package providers_test

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/juju/errors"
	"github.com/stretchr/testify/suite"

	"github.com/jloeber/ipmapper/providers"
)

type MockedIPInfoTestSuite struct {
	MockedProviderTestSuite

	prov providers.GeoProvider
}

func (suite *MockedIPInfoTestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	client := providers.NewHTTPClient(&http.Client{}, "test-agent", time.Millisecond, 100)
	suite.prov = providers.NewIPInfo(client, "", "token", time.Second)
}

func (suite *MockedIPInfoTestSuite) TestName() {
	suite.Equal(providers.NameIPInfo, suite.prov.Name())
}

func (suite *MockedIPInfoTestSuite) TestLookupFailed() {
	httpmock.RegisterResponder("GET",
		"https://ipinfo.io/23.22.13.113",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := suite.prov.Lookup(net.ParseIP("23.22.13.113"))

	suite.Error(err)
	suite.NotEqual(providers.ErrNoMatch, errors.Cause(err))
}

func (suite *MockedIPInfoTestSuite) TestLookupNotFound() {
	httpmock.RegisterResponder("GET",
		"https://ipinfo.io/23.22.13.113",
		httpmock.NewStringResponder(http.StatusNotFound, `{}`))

	_, err := suite.prov.Lookup(net.ParseIP("23.22.13.113"))

	suite.Equal(providers.ErrNoMatch, errors.Cause(err))
}

func (suite *MockedIPInfoTestSuite) TestLookupBadJSON() {
	httpmock.RegisterResponder("GET",
		"https://ipinfo.io/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{[`))

	_, err := suite.prov.Lookup(net.ParseIP("23.22.13.113"))

	suite.Error(err)
}

func (suite *MockedIPInfoTestSuite) TestLookupBogon() {
	httpmock.RegisterResponder("GET",
		"https://ipinfo.io/10.0.0.1",
		httpmock.NewStringResponder(http.StatusOK, `{"ip": "10.0.0.1", "bogon": true}`))

	_, err := suite.prov.Lookup(net.ParseIP("10.0.0.1"))

	suite.Equal(providers.ErrNoLocation, errors.Cause(err))
}

func (suite *MockedIPInfoTestSuite) TestLookupBadLocation() {
	httpmock.RegisterResponder("GET",
		"https://ipinfo.io/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{"loc": "north,west"}`))

	_, err := suite.prov.Lookup(net.ParseIP("23.22.13.113"))

	suite.Equal(providers.ErrNoLocation, errors.Cause(err))
}

func (suite *MockedIPInfoTestSuite) TestLookupOk() {
	httpmock.RegisterResponder("GET",
		"https://ipinfo.io/23.22.13.113",
		httpmock.NewStringResponder(http.StatusOK, `{
  "ip": "23.22.13.113",
  "hostname": "ec2-23-22-13-113.compute-1.amazonaws.com",
  "city": "Virginia Beach",
  "region": "Virginia",
  "country": "US",
  "loc": "36.7957,-76.0126",
  "org": "AS14618 Amazon.com, Inc.",
  "postal": "23479",
  "timezone": "America/New_York"
}`))

	result, err := suite.prov.Lookup(net.ParseIP("23.22.13.113"))

	suite.NoError(err)
	suite.InDelta(36.7957, result.Latitude, 1e-9)
	suite.InDelta(-76.0126, result.Longitude, 1e-9)
}

func (suite *MockedIPInfoTestSuite) TestCustomURL() {
	client := providers.NewHTTPClient(&http.Client{}, "test-agent", time.Millisecond, 100)
	prov := providers.NewIPInfo(client, "http://geo.local/api", "", time.Second)

	httpmock.RegisterResponder("GET",
		"http://geo.local/api/1.1.1.1",
		httpmock.NewStringResponder(http.StatusOK, `{"loc": "-33.8688,151.2093"}`))

	result, err := prov.Lookup(net.ParseIP("1.1.1.1"))

	suite.NoError(err)
	suite.InDelta(-33.8688, result.Latitude, 1e-9)
}

func TestIPInfo(t *testing.T) {
	suite.Run(t, &MockedIPInfoTestSuite{})
}
