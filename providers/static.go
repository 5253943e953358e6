package providers

import (
	"net"

	"github.com/jloeber/ipmapper/geo"
)

// Static resolves addresses with a fixed table. It is handy for small
// private networks which no public database knows about.
type Static struct {
	points map[string]geo.Coordinate
}

func (s Static) Name() string {
	return NameStatic
}

func (s Static) Lookup(ip net.IP) (geo.Coordinate, error) {
	coord, ok := s.points[ip.String()]
	if !ok {
		return geo.Coordinate{}, ErrNoMatch
	}

	return checkCoordinate(coord)
}

// NewStatic builds a provider out of a mapping between IP addresses and
// points. Keys are normalized, so "::ffff:1.2.3.4" and "1.2.3.4" are the
// same address; unparseable keys are ignored.
func NewStatic(points map[string]geo.Coordinate) Static {
	normalized := make(map[string]geo.Coordinate, len(points))

	for k, v := range points {
		if ip := net.ParseIP(k); ip != nil {
			normalized[ip.String()] = v
		}
	}

	return Static{points: normalized}
}
