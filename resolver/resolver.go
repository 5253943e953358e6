// Package resolver turns a table of IP frequencies into a table of
// frequencies of geographic points.
package resolver

import (
	"net"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/jloeber/ipmapper/frequency"
	"github.com/jloeber/ipmapper/geo"
	"github.com/jloeber/ipmapper/providers"
	"github.com/juju/errors"
)

// Aggregate defines what happens if several addresses are located at
// exactly the same point.
type Aggregate int

const (
	// Overwrite keeps the count of the last address. Addresses are
	// processed in lexicographical order, so the last one is the
	// greatest string.
	Overwrite Aggregate = iota

	// Sum adds counts of all addresses at the point.
	Sum
)

// Table maps points to frequencies.
type Table map[geo.Coordinate]int

type lookupResult struct {
	coord geo.Coordinate
	err   error
}

// Resolver is an adapter between frequency tables and a geolocation
// provider.
type Resolver struct {
	provider  providers.GeoProvider
	aggregate Aggregate
	workers   int
}

// Resolve locates every address of the table. Addresses which cannot be
// located are dropped: each of them produces a diagnostic error,
// matchable with errors.Cause against providers.ErrNoMatch,
// providers.ErrNoLocation or ErrInvalidAddress.
func (r *Resolver) Resolve(table frequency.Table) (Table, []error) {
	ips := table.IPs()
	results := r.lookup(ips)
	rv := Table{}
	diagnostics := []error{}

	for idx, ip := range ips {
		res := results[idx]

		if res.err != nil {
			logLookupError(ip, res.err)
			diagnostics = append(diagnostics, errors.Annotatef(res.err, "ip %s", ip))
			continue
		}

		switch r.aggregate {
		case Sum:
			rv[res.coord] += table[ip]
		default:
			if previous, ok := rv[res.coord]; ok {
				log.WithFields(log.Fields{
					"ip":          ip,
					"latitude":    res.coord.Latitude,
					"longitude":   res.coord.Longitude,
					"overwritten": previous,
				}).Debug("Point is already taken, overwrite its count.")
			}
			rv[res.coord] = table[ip]
		}
	}

	return rv, diagnostics
}

func (r *Resolver) lookup(ips []string) []lookupResult {
	results := make([]lookupResult, len(ips))

	if r.workers <= 1 {
		for idx, ip := range ips {
			results[idx] = r.lookupIP(ip)
		}

		return results
	}

	wg := &sync.WaitGroup{}
	tokens := make(chan struct{}, r.workers)

	wg.Add(len(ips))

	for idx, ip := range ips {
		tokens <- struct{}{}

		go func(idx int, ip string) {
			defer func() {
				<-tokens
				wg.Done()
			}()

			results[idx] = r.lookupIP(ip)
		}(idx, ip)
	}

	wg.Wait()

	return results
}

func (r *Resolver) lookupIP(ip string) lookupResult {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return lookupResult{err: ErrInvalidAddress}
	}

	coord, err := r.provider.Lookup(parsed)

	return lookupResult{coord: coord, err: err}
}

func logLookupError(ip string, err error) {
	entry := log.WithFields(log.Fields{
		"ip": ip,
	})

	switch errors.Cause(err) {
	case providers.ErrNoMatch:
		entry.Warn("No match found for IP.")
	case providers.ErrNoLocation:
		entry.Warn("Match found, but no location found for IP.")
	case ErrInvalidAddress:
		entry.Warn("Incorrect IP address.")
	default:
		entry.WithField("error", err.Error()).Warn("Cannot resolve IP.")
	}
}

// NewResolver creates a resolver which asks provider with the given
// number of concurrent lookups. Provider has to be safe for concurrent
// usage if workers is greater than 1.
func NewResolver(provider providers.GeoProvider, aggregate Aggregate, workers int) *Resolver {
	return &Resolver{
		provider:  provider,
		aggregate: aggregate,
		workers:   workers,
	}
}
