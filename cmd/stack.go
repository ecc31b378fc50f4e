package main

import (
	"net/http"
	"time"

	"github.com/spyglass-realty/permit-search/internal/adapter"
	"github.com/spyglass-realty/permit-search/internal/cascade"
	"github.com/spyglass-realty/permit-search/internal/config"
	"github.com/spyglass-realty/permit-search/internal/geocode"
)

// buildResolver creates the Nominatim client from config.
func buildResolver(cfg *config.Config) *geocode.Client {
	return geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithUserAgent(cfg.Geocode.UserAgent),
		geocode.WithRateLimit(cfg.Geocode.RateLimitRPS),
		geocode.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second,
		}),
	)
}

// buildRegistry assembles the jurisdiction registry: the Austin
// direct-fetch source first, then either the registry file's entries or the
// built-in table.
func buildRegistry(cfg *config.Config) (*adapter.Registry, error) {
	austin := adapter.NewAustin(cfg.Austin.SearchPageURL)
	if cfg.Registry.Path != "" {
		return adapter.Load(cfg.Registry.Path, austin)
	}
	return adapter.Default(austin), nil
}

// buildDispatcher wires the cascade dispatcher from config.
func buildDispatcher(cfg *config.Config) (*cascade.Dispatcher, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	rules := cascade.RouteRules{
		DistantCountyMarker: cfg.Cascade.DistantCountyMarker,
		DistantCityPrefix:   cfg.Cascade.DistantCityPrefix,
		DistantCountyPrefix: cfg.Cascade.DistantCountyPrefix,
	}

	return cascade.New(registry, rules,
		cascade.WithPace(time.Duration(cfg.Cascade.PaceDelayMS)*time.Millisecond),
	), nil
}
