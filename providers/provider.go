package providers

import (
	"net"

	"github.com/jloeber/ipmapper/geo"
)

// GeoProvider is the capability the resolver needs from any source of
// geolocation data: a point for the given IP address or an error.
//
// Errors which can be matched with errors.Cause are ErrNoMatch (address
// is unknown) and ErrNoLocation (address is known, but without
// coordinates). Anything else means that provider has failed.
type GeoProvider interface {
	Name() string
	Lookup(ip net.IP) (geo.Coordinate, error)
}

// OfflineProvider is a provider which keeps an opened database and has to
// be shut down after usage.
type OfflineProvider interface {
	GeoProvider

	Shutdown()
}

func checkCoordinate(coord geo.Coordinate) (geo.Coordinate, error) {
	if !coord.Valid() {
		return geo.Coordinate{}, ErrNoLocation
	}

	return coord, nil
}
