package config

import (
	"time"

	"github.com/jloeber/ipmapper/radius"
)

const (
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10
	DefaultBreakerTimeout    = time.Minute
	DefaultBreakerReset      = 10 * time.Second
)

// Default returns a configuration for the two bundled Robinson maps:
// 2058x1050 pixels with 8/7 pixel margins around the world outline.
func Default() *Config {
	return &Config{
		Canvas: Canvas{
			Width:   2058,
			Height:  1050,
			MarginX: 8,
			MarginY: 7,
		},
		Projection: Projection{
			Name:          ProjectionRobinson,
			Backend:       BackendBuiltin,
			SemiMajorAxis: 6378137,
			HalfWidth:     17005833.33052523,
			HalfHeight:    8625154.471849944,
		},
		Style: Style{
			StrokeThickness: 2,
			RadiusPolicy:    RadiusPolicyLinear,
			RadiusOffset:    radius.MinRadius,
			RadiusScale:     1,
			DrawOrder:       DrawOrderRadiusDesc,
		},
		Maps: []Map{
			{Name: "BW", Path: "maps/Robinson_BW.png", Stroke: "orange", Fill: "red"},
			{Name: "Color", Path: "maps/Robinson_Color.png", Stroke: "black", Fill: "white"},
		},
		Output: Output{
			Directory: ".",
			Extension: "png",
		},
		Resolver: Resolver{
			Aggregate: AggregateOverwrite,
			Workers:   1,
		},
		Providers: []Provider{
			{Name: ProviderMaxMind, Path: "GeoLite2-City.mmdb", CacheSize: 4096},
		},
	}
}
