// Package cascade implements the adapter cascade dispatcher: the
// county-biased routing rule plus the sequential try-until-confirmed-hit
// search loop over the jurisdiction registry.
package cascade

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spyglass-realty/permit-search/internal/adapter"
	"github.com/spyglass-realty/permit-search/internal/permit"
)

// RouteRules configures the distant-metro reordering heuristic. Matching is
// a plain substring test on the resolved county and a prefix test on
// adapter display names; a coincidental name overlap misroutes, which is an
// accepted limitation of the heuristic.
type RouteRules struct {
	// DistantCountyMarker triggers the reorder when the resolved county
	// contains it.
	DistantCountyMarker string
	// DistantCityPrefix matches city adapters to move up after the fixed
	// first adapter.
	DistantCityPrefix string
	// DistantCountyPrefix matches county adapters to move up after the
	// city matches.
	DistantCountyPrefix string
}

// DefaultRules biases Houston/Harris County adapters early when geocoding
// lands in Harris County.
func DefaultRules() RouteRules {
	return RouteRules{
		DistantCountyMarker: "Harris",
		DistantCityPrefix:   "City of Houston",
		DistantCountyPrefix: "Harris County",
	}
}

// Attempt is the typed outcome of one source call: records on success,
// the cause on failure. Failures never abort the cascade.
type Attempt struct {
	Source  string
	Records []permit.Record
	Err     error
}

// Dispatcher walks the routed adapter order sequentially, one source at a
// time, pacing between attempts to stay polite toward third-party portals.
type Dispatcher struct {
	registry *adapter.Registry
	rules    RouteRules
	pace     time.Duration
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithPace sets the fixed delay between adapter attempts. Zero disables
// pacing (tests).
func WithPace(d time.Duration) Option {
	return func(disp *Dispatcher) {
		disp.pace = d
	}
}

// New creates a Dispatcher over the given registry.
func New(registry *adapter.Registry, rules RouteRules, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		rules:    rules,
		pace:     400 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Route returns the adapter try order for the resolved county/city. Pure:
// same inputs always yield the same order. The registry's first adapter is
// the default-region primary and stays fixed in position 1; when the county
// carries the distant-metro marker, that metro's city adapters and then its
// county adapters move up immediately after it, ahead of the remainder in
// original relative order. city is accepted for city-based rules and is
// currently unused.
func (d *Dispatcher) Route(county, city string) []adapter.Source {
	order := d.registry.Sources()
	if len(order) == 0 {
		return order
	}
	if d.rules.DistantCountyMarker == "" || county == "" || !strings.Contains(county, d.rules.DistantCountyMarker) {
		return order
	}

	first := order[0]
	var cityMatches, countyMatches, rest []adapter.Source
	for _, s := range order[1:] {
		switch {
		case d.rules.DistantCityPrefix != "" && strings.HasPrefix(s.Name(), d.rules.DistantCityPrefix):
			cityMatches = append(cityMatches, s)
		case d.rules.DistantCountyPrefix != "" && strings.HasPrefix(s.Name(), d.rules.DistantCountyPrefix):
			countyMatches = append(countyMatches, s)
		default:
			rest = append(rest, s)
		}
	}

	routed := make([]adapter.Source, 0, len(order))
	routed = append(routed, first)
	routed = append(routed, cityMatches...)
	routed = append(routed, countyMatches...)
	routed = append(routed, rest...)
	return routed
}

// Dispatch runs the cascade for a normalized address. Every source tried is
// recorded in Checked even when its call fails; failures are logged and
// skipped (fail-open). The loop stops early on the first source whose
// records include a populated permit ID, otherwise it exhausts the routed
// order. Dispatch always produces a result, never an error.
func (d *Dispatcher) Dispatch(ctx context.Context, address, city, county string) permit.SearchResult {
	result := permit.SearchResult{
		AddressInput:   address,
		ResolvedCity:   city,
		ResolvedCounty: county,
		Hits:           []permit.Record{},
		Checked:        []string{},
	}

	routed := d.Route(county, city)
	for i, src := range routed {
		result.Checked = append(result.Checked, src.Name())

		att := d.attempt(ctx, src, address, city, county)
		if att.Err != nil {
			zap.L().Warn("cascade: source failed, skipping",
				zap.String("source", att.Source),
				zap.Error(att.Err),
			)
			continue
		}

		if len(att.Records) > 0 {
			result.Hits = append(result.Hits, att.Records...)
			if confirmed(att.Records) {
				zap.L().Debug("cascade: confirmed hit, stopping early",
					zap.String("source", att.Source),
					zap.Int("checked", len(result.Checked)),
				)
				break
			}
		}

		if i < len(routed)-1 {
			if err := d.pause(ctx); err != nil {
				break
			}
		}
	}

	return result
}

// attempt calls one source, converting the outcome to an Attempt.
func (d *Dispatcher) attempt(ctx context.Context, src adapter.Source, address, city, county string) Attempt {
	records, err := src.Search(ctx, address, city, county)
	return Attempt{Source: src.Name(), Records: records, Err: err}
}

// pause waits the pacing delay, cut short by context cancellation.
func (d *Dispatcher) pause(ctx context.Context) error {
	if d.pace <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// confirmed reports whether any record carries a populated permit ID.
func confirmed(records []permit.Record) bool {
	for _, r := range records {
		if r.Confirmed() {
			return true
		}
	}
	return false
}
