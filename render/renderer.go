package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Variant is a single output map: base image, palette and a prefix of
// the output filename.
type Variant struct {
	Name    string
	Base    image.Image
	Palette Palette
}

// Renderer draws the same set of circles on every variant and commits
// them to the filesystem.
type Renderer struct {
	fs        afero.Fs
	directory string
	extension string
	thickness int
	now       func() time.Time
}

type rendered struct {
	path    string
	content []byte
}

// Render draws circles and writes one file per variant. All files share
// a timestamp taken after drawing is over. Either every file is written
// or none of them are left on the filesystem.
func (r *Renderer) Render(circles []Circle, variants []Variant) ([]string, error) {
	contents := make([][]byte, len(variants))
	group := &errgroup.Group{}

	for idx := range variants {
		idx := idx
		group.Go(func() error {
			content, err := r.draw(circles, variants[idx])
			if err != nil {
				return errors.Annotatef(err, "Cannot render %s", variants[idx].Name)
			}
			contents[idx] = content
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	timestamp := r.now().Unix()
	outputs := make([]rendered, len(variants))
	for idx, variant := range variants {
		name := fmt.Sprintf("%s_%d.%s", variant.Name, timestamp, r.extension)
		outputs[idx] = rendered{
			path:    filepath.Join(r.directory, name),
			content: contents[idx],
		}
	}

	return r.commit(outputs)
}

func (r *Renderer) draw(circles []Circle, variant Variant) ([]byte, error) {
	surface := NewSurface(variant.Base)
	for _, circle := range circles {
		surface.DrawCircle(circle, variant.Palette, r.thickness)
	}

	buf := &bytes.Buffer{}
	if err := encode(buf, surface.Image(), r.extension); err != nil {
		return nil, errors.Annotate(err, "Cannot encode image")
	}

	log.WithFields(log.Fields{
		"variant": variant.Name,
		"circles": len(circles),
		"size":    buf.Len(),
	}).Debug("Map is rendered.")

	return buf.Bytes(), nil
}

func encode(writer io.Writer, img image.Image, extension string) error {
	switch strings.ToLower(extension) {
	case "jpg", "jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(writer, img)
	}
}

func (r *Renderer) commit(outputs []rendered) ([]string, error) {
	written := make([]string, 0, len(outputs))

	for _, output := range outputs {
		if err := r.write(output); err != nil {
			r.rollback(written)
			return nil, errors.Annotatef(err, "Cannot write %s", output.path)
		}
		written = append(written, output.path)
	}

	return written, nil
}

func (r *Renderer) write(output rendered) error {
	temp := output.path + ".part"

	if err := afero.WriteFile(r.fs, temp, output.content, 0644); err != nil {
		r.fs.Remove(temp) // nolint: errcheck
		return err
	}

	if err := r.fs.Rename(temp, output.path); err != nil {
		r.fs.Remove(temp) // nolint: errcheck
		return err
	}

	return nil
}

func (r *Renderer) rollback(paths []string) {
	for _, path := range paths {
		if err := r.fs.Remove(path); err != nil {
			log.WithFields(log.Fields{
				"path":  path,
				"error": err.Error(),
			}).Warn("Cannot remove partial output.")
		}
	}
}

// NewRenderer creates a renderer which writes files into directory of
// the given filesystem.
func NewRenderer(fs afero.Fs, directory, extension string, thickness int) *Renderer {
	return &Renderer{
		fs:        fs,
		directory: directory,
		extension: extension,
		thickness: thickness,
		now:       time.Now,
	}
}
