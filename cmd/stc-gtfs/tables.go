package main

import (
	"fmt"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/label"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/overrides"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/stopid"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/tripspec"
)

// tables are the read-only rule tables one run is built from.
type tables struct {
	assigner   *stopid.Assigner
	normalizer *label.CachedNormalizer
	colors     *overrides.ColorTable
	headsigns  *overrides.HeadsignTable
	templates  *tripspec.Table
}

func buildTables(cfg *config.AppConfig) (*tables, error) {
	assigner, err := stopid.NewAssigner(stopid.DefaultTables())
	if err != nil {
		return nil, fmt.Errorf("stop id tables: %w", err)
	}
	normalizer, err := label.NewCachedNormalizer(label.NewNormalizer(label.DefaultStyle()), cfg.Normalizer.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("label cache: %w", err)
	}
	templates, err := tripspec.Build(assigner, tripspec.DefaultSpecs())
	if err != nil {
		return nil, fmt.Errorf("trip templates: %w", err)
	}
	return &tables{
		assigner:   assigner,
		normalizer: normalizer,
		colors:     overrides.DefaultColorTable(),
		headsigns:  overrides.DefaultHeadsignTable(normalizer),
		templates:  templates,
	}, nil
}
