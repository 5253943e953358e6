//go:build proj

package projection

import (
	"fmt"
	"math"
	"sync"

	"github.com/juju/errors"
	"github.com/pebbe/proj/v5"
)

// PROJ is a Robinson transformer backed by the PROJ library. It needs
// cgo and libproj, so it is compiled only with the proj build tag.
type PROJ struct {
	mutex   sync.Mutex
	context *proj.Context
	pj      *proj.PJ
}

// Forward projects a point. PROJ objects are not safe for concurrent
// usage, so calls are serialized.
func (p *PROJ) Forward(latitude, longitude float64) (float64, float64) {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return math.NaN(), math.NaN()
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.pj == nil {
		return math.NaN(), math.NaN()
	}

	x, y, _, _, err := p.pj.Trans(proj.Fwd, proj.DegToRad(longitude), proj.DegToRad(latitude), 0, 0)
	if err != nil {
		return math.NaN(), math.NaN()
	}

	return x, y
}

// Extents returns half width and half height of the projected world in
// meters.
func (p *PROJ) Extents() (float64, float64) {
	halfWidth, _ := p.Forward(0, 180)
	_, halfHeight := p.Forward(90, 0)

	return halfWidth, halfHeight
}

// Close releases PROJ objects.
func (p *PROJ) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.pj != nil {
		p.pj.Close()
		p.pj = nil
	}
	if p.context != nil {
		p.context.Close()
		p.context = nil
	}
}

// NewPROJ creates a Robinson projection on a sphere of radius a with
// central meridian lon0.
func NewPROJ(a, lon0 float64) (*PROJ, error) {
	ctx := proj.NewContext()

	pj, err := ctx.Create(fmt.Sprintf("+proj=robin +lon_0=%v +R=%v", lon0, a))
	if err != nil {
		ctx.Close()
		return nil, errors.Annotate(err, "Cannot create PROJ transformation")
	}

	return &PROJ{context: ctx, pj: pj}, nil
}
