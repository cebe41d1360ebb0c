package config

// GTFSConfig locates the raw static feed. Path wins over StaticURL.
type GTFSConfig struct {
	Path      string `yaml:"path" toml:"path" validate:"required_without=StaticURL"`
	StaticURL string `yaml:"staticURL" toml:"staticURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" toml:"timeoutMS" validate:"gte=0"`
	CachePath string `yaml:"cachePath" toml:"cachePath"` // gob snapshot of the decoded feed
}

// AgencyConfig drives the record filters.
type AgencyConfig struct {
	AgencySubstring      string   `yaml:"agencySubstring" toml:"agencySubstring" validate:"required"`
	ForeignRoutePrefixes []string `yaml:"foreignRoutePrefixes" toml:"foreignRoutePrefixes"`
	IgnoreStopPattern    string   `yaml:"ignoreStopPattern" toml:"ignoreStopPattern"`
}

// ServicesConfig controls the useful service id extraction.
type ServicesConfig struct {
	Disabled      bool   `yaml:"disabled" toml:"disabled"`
	Today         string `yaml:"today" toml:"today" validate:"omitempty,len=8,numeric"` // YYYYMMDD, defaults to the run date
	LookaheadDays int    `yaml:"lookaheadDays" toml:"lookaheadDays" validate:"gte=0"`
}

// OutputConfig is where and how the canonical feed is written.
type OutputConfig struct {
	Dir    string `yaml:"dir" toml:"dir" validate:"required"`
	Prefix string `yaml:"prefix" toml:"prefix"`
	Format string `yaml:"format" toml:"format" validate:"oneof=json sqlite"`
}

// NormalizerConfig tunes the label normalizer.
type NormalizerConfig struct {
	CacheSize int `yaml:"cacheSize" toml:"cacheSize" validate:"gte=0"`
}

// Feed is a named feed, e.g. the current and the upcoming release.
type Feed struct {
	Name string     `yaml:"name" toml:"name" validate:"required"`
	GTFS GTFSConfig `yaml:"gtfs" toml:"gtfs" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	GTFS       GTFSConfig       `yaml:"gtfs" toml:"gtfs"`
	Feeds      []Feed           `yaml:"feeds" toml:"feeds"`
	Agency     AgencyConfig     `yaml:"agency" toml:"agency"`
	Services   ServicesConfig   `yaml:"services" toml:"services"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Normalizer NormalizerConfig `yaml:"normalizer" toml:"normalizer"`
}
