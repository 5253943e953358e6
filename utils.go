package main

import (
	"net/http"
	"net/http/cookiejar"

	"github.com/juju/errors"

	"github.com/jloeber/ipmapper/config"
	"github.com/jloeber/ipmapper/csvdb"
	"github.com/jloeber/ipmapper/geo"
	"github.com/jloeber/ipmapper/projection"
	"github.com/jloeber/ipmapper/providers"
	"github.com/jloeber/ipmapper/radius"
	"github.com/jloeber/ipmapper/render"
	"github.com/jloeber/ipmapper/resolver"
)

// makeProviders creates providers in the order of configuration and
// chains them. Already opened databases are closed if any of the rest
// cannot be created.
func makeProviders(conf *config.Config) (providers.OfflineProvider, error) {
	created := make([]providers.GeoProvider, 0, len(conf.Providers))
	cleanup := func() {
		for _, v := range created {
			if offline, ok := v.(providers.OfflineProvider); ok {
				offline.Shutdown()
			}
		}
	}

	for _, v := range conf.Providers {
		prov, err := makeProvider(v)
		if err != nil {
			cleanup()
			return nil, errors.Annotatef(err, "Cannot create provider %s", v.Name)
		}

		if v.BreakerThreshold > 0 {
			prov = providers.NewCircuitBreaker(prov, uint32(v.BreakerThreshold),
				v.GetBreakerTimeout(), config.DefaultBreakerReset)
		}
		if v.CacheSize > 0 {
			prov = providers.NewCachingProvider(prov, v.CacheSize)
		}
		created = append(created, prov)
	}

	return providers.NewChain(created...), nil
}

func makeProvider(conf config.Provider) (providers.GeoProvider, error) {
	switch conf.Name {
	case config.ProviderMaxMind:
		return providers.NewMaxMind(conf.Path)
	case config.ProviderIP2Location:
		return providers.NewIP2Location(conf.Path)
	case config.ProviderSypex:
		return providers.NewSypex(conf.Path)
	case config.ProviderCSVDB:
		maker := csvdb.MakeRangeRecord
		if conf.GetFormat() == config.CSVFormatDBIPCity {
			maker = csvdb.MakeDBIPCityRecord
		}
		return providers.NewCSVDB(conf.Path, maker)
	case config.ProviderIPInfo:
		return providers.NewIPInfo(makeHTTPClient(conf), conf.URL, conf.AuthToken,
			conf.GetHTTPTimeout()), nil
	case config.ProviderStatic:
		points := make(map[string]geo.Coordinate, len(conf.Points))
		for ip, point := range conf.Points {
			points[ip] = geo.Coordinate{Latitude: point[0], Longitude: point[1]}
		}
		return providers.NewStatic(points), nil
	}

	return nil, errors.Errorf("Unsupported provider %s", conf.Name)
}

func makeHTTPClient(conf config.Provider) providers.HTTPClient {
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}

	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
		Jar:     jar,
	}

	return providers.NewHTTPClient(httpClient,
		"ipmapper/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst())
}

func makeEngine(conf *config.Config) (*projection.Engine, func(), error) {
	var transformer projection.Transformer
	closer := func() {}

	switch {
	case conf.Projection.Name != config.ProjectionRobinson:
		return nil, nil, errors.Errorf("Unsupported projection %s", conf.Projection.Name)
	case conf.Projection.Backend == config.BackendPROJ:
		pj, err := projection.NewPROJ(conf.Projection.SemiMajorAxis, conf.Projection.CentralMeridian)
		if err != nil {
			return nil, nil, err
		}
		transformer, closer = pj, pj.Close
	default:
		transformer = projection.Robinson{
			A:    conf.Projection.SemiMajorAxis,
			Lon0: conf.Projection.CentralMeridian,
		}
	}

	canvas := projection.Canvas{
		Width:   conf.Canvas.Width,
		Height:  conf.Canvas.Height,
		MarginX: conf.Canvas.MarginX,
		MarginY: conf.Canvas.MarginY,
	}

	engine, err := projection.NewEngine(transformer, canvas,
		conf.Projection.HalfWidth, conf.Projection.HalfHeight)
	if err != nil {
		closer()
		return nil, nil, err
	}

	return engine, closer, nil
}

func makeRadiusPolicy(conf config.Style) radius.Policy {
	var policy radius.Policy

	switch conf.RadiusPolicy {
	case config.RadiusPolicyLogarithmic:
		policy = radius.Logarithmic{Min: conf.RadiusOffset, Scale: conf.RadiusScale}
	default:
		policy = radius.Linear{Offset: conf.RadiusOffset}
	}

	if conf.RadiusMax > 0 {
		policy = radius.Capped{Policy: policy, Max: conf.RadiusMax}
	}

	return policy
}

func makeDrawOrder(conf config.Style) render.Order {
	if conf.DrawOrder == config.DrawOrderNone {
		return render.AsIs
	}

	return render.RadiusDesc
}

func makeAggregate(conf config.Resolver) resolver.Aggregate {
	if conf.Aggregate == config.AggregateSum {
		return resolver.Sum
	}

	return resolver.Overwrite
}
