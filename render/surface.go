package render

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	// base maps are PNG usually, but any of the standard formats will do
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// Surface is a mutable copy of a base map.
type Surface struct {
	img *image.RGBA
}

// DrawCircle draws a stroke disc of radius+thickness and a fill disc on
// top of it. Both are blended over existing pixels. A radius larger than
// width+height of the surface covers it completely, so it is cut down
// to that.
func (s *Surface) DrawCircle(circle Circle, palette Palette, thickness int) {
	center := image.Point{X: circle.X, Y: circle.Y}
	bounds := s.img.Bounds()
	radius := circle.Radius

	if limit := bounds.Dx() + bounds.Dy(); radius > limit {
		radius = limit
	}
	if radius < 0 {
		radius = 0
	}

	s.drawDisc(&disc{center: center, radius: radius + thickness}, palette.Stroke)
	s.drawDisc(&disc{center: center, radius: radius}, palette.Fill)
}

func (s *Surface) drawDisc(mask *disc, fill color.Color) {
	bounds := mask.Bounds().Intersect(s.img.Bounds())
	if bounds.Empty() {
		return
	}

	draw.DrawMask(s.img, bounds, image.NewUniform(fill), image.Point{}, mask, bounds.Min, draw.Over)
}

// Image returns the current state of the surface.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// NewSurface copies base image. Base is never modified.
func NewSurface(base image.Image) *Surface {
	bounds := base.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), base, bounds.Min, draw.Src)

	return &Surface{img: img}
}

// LoadBase decodes base map image from the filesystem.
func LoadBase(fs afero.Fs, path string) (image.Image, error) {
	file, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Annotatef(ErrMissingBaseMap, "path %s", path)
		}
		return nil, errors.Annotatef(err, "Cannot open base map %s", path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot decode base map %s", path)
	}

	return img, nil
}

// CheckSize verifies that image is exactly width x height pixels.
func CheckSize(img image.Image, width, height int) error {
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return errors.Annotatef(ErrSizeMismatch, "%dx%d instead of %dx%d",
			bounds.Dx(), bounds.Dy(), width, height)
	}

	return nil
}
