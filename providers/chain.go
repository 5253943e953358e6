package providers

import (
	"net"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

// Chain asks providers one by one and returns the first point found.
type Chain struct {
	providers []GeoProvider
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, v := range c.providers {
		names = append(names, v.Name())
	}

	return strings.Join(names, ",")
}

// Lookup returns ErrNoLocation if at least one provider knows the
// address but none has its location, and ErrNoMatch if nobody knows it.
// Failures of providers are logged and treated as "no match".
func (c *Chain) Lookup(ip net.IP) (geo.Coordinate, error) {
	var rv error = ErrNoMatch

	for _, provider := range c.providers {
		coord, err := provider.Lookup(ip)
		if err == nil {
			return coord, nil
		}

		switch errors.Cause(err) {
		case ErrNoLocation:
			rv = ErrNoLocation
		case ErrNoMatch:
		default:
			log.WithFields(log.Fields{
				"provider": provider.Name(),
				"ip":       ip.String(),
				"error":    err.Error(),
			}).Warn("Provider has failed.")
		}
	}

	return geo.Coordinate{}, rv
}

// Shutdown shuts down every offline provider of the chain.
func (c *Chain) Shutdown() {
	for _, v := range c.providers {
		if vv, ok := v.(OfflineProvider); ok {
			vv.Shutdown()
		}
	}
}

func NewChain(providers ...GeoProvider) *Chain {
	return &Chain{providers: providers}
}
