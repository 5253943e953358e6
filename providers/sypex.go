package providers

import (
	"net"
	"os"

	sypex "gopkg.in/night-codes/go-sypexgeo.v1"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

// Sypex resolves addresses with SypexGeo City databases.
type Sypex struct {
	db sypex.SxGEO
}

func (sx *Sypex) Name() string {
	return NameSypex
}

func (sx *Sypex) Lookup(ip net.IP) (geo.Coordinate, error) {
	info, err := sx.db.GetCityFull(ip.String())
	if err != nil {
		return geo.Coordinate{}, errors.Annotate(ErrNoMatch, err.Error())
	}

	cityMap, ok := info["city"].(map[string]interface{})
	if !ok {
		return geo.Coordinate{}, ErrNoLocation
	}

	lat, okLat := sypexFloat(cityMap["lat"])
	lon, okLon := sypexFloat(cityMap["lon"])
	if !okLat || !okLon || (lat == 0 && lon == 0) {
		return geo.Coordinate{}, ErrNoLocation
	}

	return checkCoordinate(geo.Coordinate{Latitude: lat, Longitude: lon})
}

func sypexFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}

	return 0, false
}

// NewSypex opens SxGeo dat file. Sypex library panics on corrupted
// databases so this panic is converted into error.
func NewSypex(path string) (prov *Sypex, err error) {
	if _, err = os.Stat(path); err != nil {
		return nil, errors.Annotatef(err, "Cannot open Sypex database %s", path)
	}

	defer func() {
		if rec := recover(); rec != nil {
			prov = nil
			switch x := rec.(type) {
			case string:
				err = errors.Annotate(errors.New(x), "Cannot open Sypex database")
			case error:
				err = errors.Annotate(x, "Cannot open Sypex database")
			default:
				err = errors.Errorf("Cannot open Sypex database: %v", x)
			}
		}
	}()

	return &Sypex{db: sypex.New(path)}, nil
}
