package providers_test

import (
	"io/ioutil"
	"net"
	"os"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jloeber/ipmapper/geo"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Name() string {
	return m.Called().String(0)
}

func (m *ProviderMock) Lookup(ip net.IP) (geo.Coordinate, error) {
	args := m.Called(ip)

	return args.Get(0).(geo.Coordinate), args.Error(1)
}

type OfflineProviderMock struct {
	ProviderMock
}

func (m *OfflineProviderMock) Shutdown() {
	m.Called()
}

type ProviderTestSuite struct {
	suite.Suite

	baseDirectory string
}

func (suite *ProviderTestSuite) SetupTest() {
	dir, err := ioutil.TempDir("", "ipmapper_test_")
	if err != nil {
		panic(err)
	}

	suite.baseDirectory = dir
}

func (suite *ProviderTestSuite) TearDownTest() {
	os.RemoveAll(suite.baseDirectory)
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
	suite.ProviderTestSuite.TearDownTest()
}
