package providers_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jloeber/ipmapper/providers"
)

type HTTPClientTestSuite struct {
	suite.Suite

	endpoint      *httptest.Server
	userAgent     string
	userAgentLock sync.Mutex
	c             providers.HTTPClient
}

func (suite *HTTPClientTestSuite) SetupSuite() {
	suite.endpoint = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		suite.userAgentLock.Lock()
		suite.userAgent = req.Header.Get("User-Agent")
		suite.userAgentLock.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
}

func (suite *HTTPClientTestSuite) TearDownSuite() {
	suite.endpoint.Close()
}

func (suite *HTTPClientTestSuite) SetupTest() {
	suite.c = providers.NewHTTPClient(suite.endpoint.Client(),
		"test",
		100*time.Millisecond,
		1)
}

func (suite *HTTPClientTestSuite) TestUserAgent() {
	req, _ := http.NewRequest("GET", suite.endpoint.URL, nil)
	resp, err := suite.c.Do(req)

	suite.Require().NoError(err)
	resp.Body.Close()

	suite.userAgentLock.Lock()
	defer suite.userAgentLock.Unlock()
	suite.Equal("test", suite.userAgent)
}

func (suite *HTTPClientTestSuite) TestRateLimiter() {
	now := time.Now()
	wg := &sync.WaitGroup{}

	wg.Add(5)

	for i := 0; i < 5; i++ {
		go func() {
			defer wg.Done()

			req, _ := http.NewRequest("GET", suite.endpoint.URL, nil)
			resp, err := suite.c.Do(req)

			if suite.NoError(err) {
				resp.Body.Close()
			}
		}()
	}

	wg.Wait()

	suite.True(time.Since(now) > 350*time.Millisecond)
}

func (suite *HTTPClientTestSuite) TestCannotDial() {
	req, _ := http.NewRequest("GET", suite.endpoint.URL+"1", nil)
	_, err := suite.c.Do(req)

	suite.Error(err)
}

func TestHTTPClient(t *testing.T) {
	suite.Run(t, &HTTPClientTestSuite{})
}
