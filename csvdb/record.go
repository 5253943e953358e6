package csvdb

import (
	"net"
	"strconv"
	"strings"

	cidrman "github.com/EvilSuperstars/go-cidrman"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

// Record presents an IP range with a point it is located at.
type Record struct {
	StartIP    string
	FinishIP   string
	Coordinate geo.Coordinate
}

// GetSubnets returns non-overlapping subnets of the given Record.
func (r *Record) GetSubnets() (subnets []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			switch x := rec.(type) {
			case string:
				err = errors.Annotate(errors.New(x), "Incorrect subnets")
			case error:
				err = errors.Annotate(x, "Incorrect subnets")
			}
		}
	}()

	subnets, err = cidrman.IPRangeToCIDRs(r.StartIP, r.FinishIP)
	return
}

// NewRecord creates new CSV record. Empty latitude and longitude are
// treated as a range without location.
func NewRecord(startIP, finishIP, latitude, longitude string) (*Record, error) {
	startIP = strings.TrimSpace(startIP)
	finishIP = strings.TrimSpace(finishIP)

	if !ipOk(startIP) {
		return nil, errors.Annotatef(ErrIncorrectIP, "start ip %q", startIP)
	}
	if !ipOk(finishIP) {
		return nil, errors.Annotatef(ErrIncorrectIP, "finish ip %q", finishIP)
	}

	latitude = strings.TrimSpace(latitude)
	longitude = strings.TrimSpace(longitude)
	if latitude == "" || longitude == "" {
		return nil, ErrNoCoordinates
	}

	lat, errLat := strconv.ParseFloat(latitude, 64)
	lon, errLon := strconv.ParseFloat(longitude, 64)
	coord := geo.Coordinate{Latitude: lat, Longitude: lon}
	if errLat != nil || errLon != nil || !coord.Valid() {
		return nil, errors.Annotatef(ErrIncorrectCoordinates, "%q,%q", latitude, longitude)
	}

	return &Record{StartIP: startIP, FinishIP: finishIP, Coordinate: coord}, nil
}

// MakeRangeRecord parses "start_ip,finish_ip,latitude,longitude" rows.
func MakeRangeRecord(data []string) (*Record, error) {
	if len(data) != 4 {
		return nil, errors.Annotatef(ErrColumnsCount, "expected 4, got %d", len(data))
	}

	return NewRecord(data[0], data[1], data[2], data[3])
}

// MakeDBIPCityRecord parses rows of db-ip.com "IP to City Lite" CSV:
// start, finish, continent, country, region, city, latitude, longitude.
func MakeDBIPCityRecord(data []string) (*Record, error) {
	if len(data) != 8 {
		return nil, errors.Annotatef(ErrColumnsCount, "expected 8, got %d", len(data))
	}

	return NewRecord(data[0], data[1], data[6], data[7])
}

func ipOk(ip string) bool {
	parsed := net.ParseIP(ip)

	return parsed != nil && parsed.To4() != nil
}
