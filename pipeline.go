package main

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"
	"github.com/spf13/afero"

	"github.com/jloeber/ipmapper/config"
	"github.com/jloeber/ipmapper/frequency"
	"github.com/jloeber/ipmapper/geo"
	"github.com/jloeber/ipmapper/projection"
	"github.com/jloeber/ipmapper/providers"
	"github.com/jloeber/ipmapper/render"
	"github.com/jloeber/ipmapper/resolver"
)

type providerFactory func(*config.Config) (providers.OfflineProvider, error)

// run executes the whole pipeline and returns paths of the written maps.
// Everything which can fail fatally is checked before the first lookup.
func run(fs afero.Fs, conf *config.Config, inputPath string, newProvider providerFactory) ([]string, error) {
	table, diagnostics, err := frequency.Load(fs, inputPath)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot load input")
	}
	log.WithFields(log.Fields{
		"addresses": len(table),
		"skipped":   len(diagnostics),
	}).Info("Input is loaded.")

	variants, err := loadVariants(fs, conf)
	if err != nil {
		return nil, err
	}

	engine, closeEngine, err := makeEngine(conf)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot create projection")
	}
	defer closeEngine()

	provider, err := newProvider(conf)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot create providers")
	}
	defer provider.Shutdown()

	res := resolver.NewResolver(provider, makeAggregate(conf.Resolver), conf.Resolver.Workers)
	points, unresolved := res.Resolve(table)
	log.WithFields(log.Fields{
		"points":     len(points),
		"unresolved": len(unresolved),
		"provider":   provider.Name(),
	}).Info("Addresses are resolved.")

	circles := render.Circles(project(engine, points),
		makeRadiusPolicy(conf.Style), makeDrawOrder(conf.Style))

	renderer := render.NewRenderer(fs, conf.Output.Directory, conf.Output.Extension,
		conf.Style.StrokeThickness)
	paths, err := renderer.Render(circles, variants)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot render maps")
	}

	return paths, nil
}

func loadVariants(fs afero.Fs, conf *config.Config) ([]render.Variant, error) {
	variants := make([]render.Variant, 0, len(conf.Maps))

	for _, v := range conf.Maps {
		palette, err := render.NewPalette(v.Stroke, v.Fill)
		if err != nil {
			return nil, errors.Annotatef(err, "Incorrect palette of %s map", v.Name)
		}

		base, err := render.LoadBase(fs, v.Path)
		if err != nil {
			return nil, errors.Annotatef(err, "Cannot load %s map", v.Name)
		}
		if err := render.CheckSize(base, conf.Canvas.Width, conf.Canvas.Height); err != nil {
			return nil, errors.Annotatef(err, "Incorrect %s map", v.Name)
		}

		variants = append(variants, render.Variant{
			Name:    v.Name,
			Base:    base,
			Palette: palette,
		})
	}

	return variants, nil
}

// project converts points in a stable order: by latitude, then by
// longitude.
func project(engine *projection.Engine, table resolver.Table) []render.Point {
	coords := make([]geo.Coordinate, 0, len(table))
	for coord := range table {
		coords = append(coords, coord)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Latitude != coords[j].Latitude {
			return coords[i].Latitude < coords[j].Latitude
		}
		return coords[i].Longitude < coords[j].Longitude
	})

	points := make([]render.Point, len(coords))
	for idx, coord := range coords {
		points[idx] = render.Point{
			Pixel: engine.Project(coord),
			Count: table[coord],
		}
	}

	return points
}
