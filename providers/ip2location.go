package providers

import (
	"net"
	"os"
	"strings"
	"sync"

	ip2location "github.com/ip2location/ip2location-go"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

// ip2location library keeps an opened database in a package state, so
// only one database can be used at a time.
var ip2locationLock sync.Mutex

// IP2Location resolves addresses with IP2Location BIN databases. Only
// DB5 and higher carry coordinates; country-level databases result in
// ErrNoLocation for every address.
type IP2Location struct {
	opened bool
}

func (i2l *IP2Location) Name() string {
	return NameIP2Location
}

func (i2l *IP2Location) Lookup(ip net.IP) (geo.Coordinate, error) {
	ip2locationLock.Lock()
	defer ip2locationLock.Unlock()

	if !i2l.opened {
		return geo.Coordinate{}, ErrDatabaseIsNotReadyYet
	}

	result := ip2location.Get_all(ip.String())

	switch strings.ToLower(result.Country_short) {
	case "", "-", "invalid ip address.", "invalid database file.":
		return geo.Coordinate{}, ErrNoMatch
	}

	if result.Latitude == 0 && result.Longitude == 0 {
		return geo.Coordinate{}, ErrNoLocation
	}

	return checkCoordinate(geo.Coordinate{
		Latitude:  float64(result.Latitude),
		Longitude: float64(result.Longitude),
	})
}

func (i2l *IP2Location) Shutdown() {
	ip2locationLock.Lock()
	defer ip2locationLock.Unlock()

	if i2l.opened {
		ip2location.Close()
		i2l.opened = false
	}
}

// NewIP2Location opens BIN database at the given path.
func NewIP2Location(path string) (*IP2Location, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Annotatef(err, "Cannot open IP2Location database %s", path)
	}

	ip2locationLock.Lock()
	defer ip2locationLock.Unlock()

	ip2location.Open(path)

	return &IP2Location{opened: true}, nil
}
