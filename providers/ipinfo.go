package providers

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

const ipinfoDefaultURL = "https://ipinfo.io/"

type ipinfoResponse struct {
	Bogon bool   `json:"bogon"`
	Loc   string `json:"loc"`
}

// IPInfo resolves addresses with ipinfo.io API.
type IPInfo struct {
	baseURL   string
	authToken string
	timeout   time.Duration
	client    HTTPClient
}

func (i IPInfo) Name() string {
	return NameIPInfo
}

func (i IPInfo) Lookup(ip net.IP) (geo.Coordinate, error) {
	ctx, cancel := requestContext(i.timeout)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, i.baseURL+ip.String(), nil)
	if err != nil {
		return geo.Coordinate{}, errors.Annotate(err, "Cannot build a request")
	}

	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	if i.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+i.authToken)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, err
	}
	defer flushResponse(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return geo.Coordinate{}, ErrNoMatch
	case resp.StatusCode != http.StatusOK:
		return geo.Coordinate{}, errors.Errorf("Unexpected status code %d", resp.StatusCode)
	}

	jsonResponse := ipinfoResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return geo.Coordinate{}, errors.Annotate(err, "Cannot parse a response")
	}

	if jsonResponse.Bogon || jsonResponse.Loc == "" {
		return geo.Coordinate{}, ErrNoLocation
	}

	return parseIPInfoLoc(jsonResponse.Loc)
}

func parseIPInfoLoc(loc string) (geo.Coordinate, error) {
	chunks := strings.Split(loc, ",")
	if len(chunks) != 2 {
		return geo.Coordinate{}, errors.Annotatef(ErrNoLocation, "Incorrect location %q", loc)
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(chunks[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(chunks[1]), 64)
	if errLat != nil || errLon != nil {
		return geo.Coordinate{}, errors.Annotatef(ErrNoLocation, "Incorrect location %q", loc)
	}

	return checkCoordinate(geo.Coordinate{Latitude: lat, Longitude: lon})
}

// NewIPInfo creates a provider for ipinfo.io. Empty baseURL means
// the public endpoint.
func NewIPInfo(client HTTPClient, baseURL, authToken string, timeout time.Duration) IPInfo {
	if baseURL == "" {
		baseURL = ipinfoDefaultURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return IPInfo{
		baseURL:   baseURL,
		authToken: authToken,
		timeout:   timeout,
		client:    client,
	}
}
