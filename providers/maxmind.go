package providers

import (
	"net"
	"sync"

	geoip2 "github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
	log "github.com/sirupsen/logrus"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

// MaxMind resolves addresses with GeoLite2/GeoIP2 City databases.
type MaxMind struct {
	db     *maxminddb.Reader
	dbLock sync.RWMutex
}

func (mm *MaxMind) Name() string {
	return NameMaxMind
}

// Lookup finds a record of the network ip belongs to and decodes its
// location. Networks without location block (country-only records)
// have zero coordinates in a decoded City.
func (mm *MaxMind) Lookup(ip net.IP) (geo.Coordinate, error) {
	mm.dbLock.RLock()
	defer mm.dbLock.RUnlock()

	if mm.db == nil {
		return geo.Coordinate{}, ErrDatabaseIsNotReadyYet
	}

	offset, err := mm.db.LookupOffset(ip)
	if err != nil {
		return geo.Coordinate{}, errors.Annotatef(err, "Cannot lookup %s", ip)
	}
	if offset == maxminddb.NotFound {
		return geo.Coordinate{}, ErrNoMatch
	}

	record := geoip2.City{}
	if err := mm.db.Decode(offset, &record); err != nil {
		return geo.Coordinate{}, errors.Annotatef(err, "Cannot decode record for %s", ip)
	}

	log.WithFields(log.Fields{
		"ip":       ip.String(),
		"country":  record.Country.IsoCode,
		"accuracy": record.Location.AccuracyRadius,
	}).Debug("Found record.")

	if record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return geo.Coordinate{}, ErrNoLocation
	}

	return checkCoordinate(geo.Coordinate{
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
	})
}

// Shutdown closes the database. Lookups after that return
// ErrDatabaseIsNotReadyYet.
func (mm *MaxMind) Shutdown() {
	mm.dbLock.Lock()
	defer mm.dbLock.Unlock()

	if mm.db != nil {
		mm.db.Close() // nolint
		mm.db = nil
	}
}

// NewMaxMind opens mmdb file at the given path.
func NewMaxMind(path string) (*MaxMind, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open MaxMind database %s", path)
	}

	return &MaxMind{db: db}, nil
}
