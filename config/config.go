package config

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"

	"github.com/jloeber/ipmapper/radius"
)

const (
	ProjectionRobinson = "robinson"

	BackendBuiltin = "builtin"
	BackendPROJ    = "proj"

	RadiusPolicyLinear      = "linear"
	RadiusPolicyLogarithmic = "logarithmic"

	AggregateOverwrite = "overwrite"
	AggregateSum       = "sum"

	DrawOrderRadiusDesc = "radius_desc"
	DrawOrderNone       = "none"

	ProviderMaxMind     = "maxmind"
	ProviderIP2Location = "ip2location"
	ProviderSypex       = "sypex"
	ProviderCSVDB       = "csvdb"
	ProviderIPInfo      = "ipinfo"
	ProviderStatic      = "static"

	CSVFormatRanges   = "ranges"
	CSVFormatDBIPCity = "dbip_city"
)

var validProjections = map[string]bool{
	ProjectionRobinson: true,
}

var validBackends = map[string]bool{
	"":             true,
	BackendBuiltin: true,
	BackendPROJ:    true,
}

var validRadiusPolicies = map[string]bool{
	RadiusPolicyLinear:      true,
	RadiusPolicyLogarithmic: true,
}

var validAggregates = map[string]bool{
	AggregateOverwrite: true,
	AggregateSum:       true,
}

var validDrawOrders = map[string]bool{
	DrawOrderRadiusDesc: true,
	DrawOrderNone:       true,
}

var validProviders = map[string]bool{
	ProviderMaxMind:     true,
	ProviderIP2Location: true,
	ProviderSypex:       true,
	ProviderCSVDB:       true,
	ProviderIPInfo:      true,
	ProviderStatic:      true,
}

var validCSVFormats = map[string]bool{
	"":                true,
	CSVFormatRanges:   true,
	CSVFormatDBIPCity: true,
}

var validExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

// Canvas describes pixel geometry of the base map images.
type Canvas struct {
	Width   int `toml:"width"`
	Height  int `toml:"height"`
	MarginX int `toml:"margin_x"`
	MarginY int `toml:"margin_y"`
}

// Projection describes a planar projection the base maps were drawn
// with. Zero half extents mean "derive them from the projection".
type Projection struct {
	Name            string  `toml:"name"`
	Backend         string  `toml:"backend"`
	SemiMajorAxis   float64 `toml:"semi_major_axis"`
	CentralMeridian float64 `toml:"lon_0"`
	HalfWidth       float64 `toml:"half_width"`
	HalfHeight      float64 `toml:"half_height"`
}

type Style struct {
	StrokeThickness int     `toml:"stroke_thickness"`
	RadiusPolicy    string  `toml:"radius_policy"`
	RadiusOffset    float64 `toml:"radius_offset"`
	RadiusScale     float64 `toml:"radius_scale"`
	RadiusMax       float64 `toml:"radius_max"`
	DrawOrder       string  `toml:"draw_order"`
}

// Map is a single output variant: base image and a palette to draw
// circles with.
type Map struct {
	Name   string `toml:"name"`
	Path   string `toml:"path"`
	Stroke string `toml:"stroke"`
	Fill   string `toml:"fill"`
}

type Output struct {
	Directory string `toml:"directory"`
	Extension string `toml:"extension"`
}

type Resolver struct {
	Aggregate string `toml:"aggregate"`
	Workers   int    `toml:"workers"`
}

type Provider struct {
	Name              string               `toml:"name"`
	Path              string               `toml:"path"`
	Format            string               `toml:"format"`
	URL               string               `toml:"url"`
	AuthToken         string               `toml:"auth_token"`
	CacheSize         int                  `toml:"cache_size"`
	HTTPTimeout       duration             `toml:"http_timeout"`
	RateLimitInterval duration             `toml:"rate_limit_interval"`
	RateLimitBurst    int                  `toml:"rate_limit_burst"`
	BreakerThreshold  int                  `toml:"circuit_breaker_threshold"`
	BreakerTimeout    duration             `toml:"circuit_breaker_timeout"`
	Points            map[string][]float64 `toml:"points"`
}

func (p Provider) GetFormat() string {
	if p.Format == "" {
		return CSVFormatRanges
	}

	return p.Format
}

func (p Provider) GetHTTPTimeout() time.Duration {
	if p.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return p.HTTPTimeout.Duration
}

func (p Provider) GetRateLimitInterval() time.Duration {
	if p.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return p.RateLimitInterval.Duration
}

func (p Provider) GetBreakerTimeout() time.Duration {
	if p.BreakerTimeout.Duration == 0 {
		return DefaultBreakerTimeout
	}

	return p.BreakerTimeout.Duration
}

func (p Provider) GetRateLimitBurst() int {
	if p.RateLimitBurst <= 0 {
		return DefaultRateLimitBurst
	}

	return p.RateLimitBurst
}

type Config struct {
	Canvas     Canvas     `toml:"canvas"`
	Projection Projection `toml:"projection"`
	Style      Style      `toml:"style"`
	Maps       []Map      `toml:"maps"`
	Output     Output     `toml:"output"`
	Resolver   Resolver   `toml:"resolver"`
	Providers  []Provider `toml:"providers"`
}

// Parse reads TOML configuration on top of defaults and validates it.
func Parse(reader io.Reader) (*Config, error) {
	conf := Default()

	buf, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot read config file")
	}

	// arrays of tables replace defaults instead of being merged into them
	defaultMaps, defaultProviders := conf.Maps, conf.Providers
	conf.Maps, conf.Providers = nil, nil

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "Cannot parse config file")
	}

	if conf.Maps == nil {
		conf.Maps = defaultMaps
	}
	if conf.Providers == nil {
		conf.Providers = defaultProviders
	}

	if err = validate(conf); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

func validate(conf *Config) error {
	if conf.Canvas.Width <= 0 || conf.Canvas.Height <= 0 {
		return errors.Errorf("Incorrect canvas size %dx%d",
			conf.Canvas.Width, conf.Canvas.Height)
	}
	if conf.Canvas.MarginX < 0 || 2*conf.Canvas.MarginX >= conf.Canvas.Width {
		return errors.Errorf("Incorrect horizontal margin %d", conf.Canvas.MarginX)
	}
	if conf.Canvas.MarginY < 0 || 2*conf.Canvas.MarginY >= conf.Canvas.Height {
		return errors.Errorf("Incorrect vertical margin %d", conf.Canvas.MarginY)
	}

	if !validProjections[conf.Projection.Name] {
		return errors.Errorf("Unknown projection %s", conf.Projection.Name)
	}
	if !validBackends[conf.Projection.Backend] {
		return errors.Errorf("Unknown projection backend %s", conf.Projection.Backend)
	}
	if conf.Projection.SemiMajorAxis <= 0 {
		return errors.Errorf("Incorrect semi major axis %f", conf.Projection.SemiMajorAxis)
	}
	if conf.Projection.HalfWidth < 0 || conf.Projection.HalfHeight < 0 {
		return errors.Errorf("Incorrect projection extents %fx%f",
			conf.Projection.HalfWidth, conf.Projection.HalfHeight)
	}

	if conf.Style.StrokeThickness < 0 {
		return errors.Errorf("Incorrect stroke thickness %d", conf.Style.StrokeThickness)
	}
	if !validRadiusPolicies[conf.Style.RadiusPolicy] {
		return errors.Errorf("Unknown radius policy %s", conf.Style.RadiusPolicy)
	}
	if conf.Style.RadiusOffset < radius.MinRadius {
		return errors.Errorf("Radius offset %f is less than %f",
			conf.Style.RadiusOffset, radius.MinRadius)
	}
	if conf.Style.RadiusScale < 0 {
		return errors.Errorf("Incorrect radius scale %f", conf.Style.RadiusScale)
	}
	if conf.Style.RadiusMax != 0 && conf.Style.RadiusMax < conf.Style.RadiusOffset {
		return errors.Errorf("Radius cap %f is less than radius offset %f",
			conf.Style.RadiusMax, conf.Style.RadiusOffset)
	}
	if !validDrawOrders[conf.Style.DrawOrder] {
		return errors.Errorf("Unknown draw order %s", conf.Style.DrawOrder)
	}

	if len(conf.Maps) == 0 {
		return errors.New("No maps are configured")
	}
	seenMaps := map[string]bool{}
	for _, v := range conf.Maps {
		if v.Name == "" || v.Path == "" {
			return errors.Errorf("Map should have both name and path")
		}
		if seenMaps[v.Name] {
			return errors.Errorf("Map %s is duplicated", v.Name)
		}
		seenMaps[v.Name] = true
	}

	if !validExtensions[conf.Output.Extension] {
		return errors.Errorf("Unsupported output extension %q", conf.Output.Extension)
	}

	if !validAggregates[conf.Resolver.Aggregate] {
		return errors.Errorf("Unknown aggregate policy %s", conf.Resolver.Aggregate)
	}
	if conf.Resolver.Workers < 0 {
		return errors.Errorf("Incorrect number of workers %d", conf.Resolver.Workers)
	}

	if len(conf.Providers) == 0 {
		return errors.New("No providers are configured")
	}
	for _, v := range conf.Providers {
		if !validProviders[v.Name] {
			return errors.Errorf("Unknown provider %s", v.Name)
		}
		if v.CacheSize < 0 {
			return errors.Errorf("Incorrect cache size %d for provider %s",
				v.CacheSize, v.Name)
		}
		switch v.Name {
		case ProviderIPInfo, ProviderStatic:
		default:
			if v.Path == "" {
				return errors.Errorf("Provider %s requires a path", v.Name)
			}
		}
		if v.BreakerThreshold < 0 {
			return errors.Errorf("Incorrect circuit breaker threshold %d for provider %s",
				v.BreakerThreshold, v.Name)
		}
		if !validCSVFormats[v.Format] {
			return errors.Errorf("Unknown CSV format %s", v.Format)
		}
		for ip, point := range v.Points {
			if len(point) != 2 {
				return errors.Errorf("Point for %s should be [latitude, longitude]", ip)
			}
		}
	}

	return nil
}
