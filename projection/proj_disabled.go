//go:build !proj

package projection

import (
	"math"

	"github.com/juju/errors"
)

// PROJ is unavailable: binary was built without the proj build tag.
type PROJ struct{}

func (p *PROJ) Forward(latitude, longitude float64) (float64, float64) {
	return math.NaN(), math.NaN()
}

func (p *PROJ) Close() {}

// NewPROJ always fails. Rebuild with `-tags proj` and libproj installed.
func NewPROJ(a, lon0 float64) (*PROJ, error) {
	return nil, errors.New("Built without PROJ support, use -tags proj")
}
