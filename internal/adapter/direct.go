package adapter

import (
	"context"

	"github.com/spyglass-realty/permit-search/internal/permit"
)

// FetchFunc performs a real lookup against a jurisdiction's permit system.
type FetchFunc func(ctx context.Context, address, city, county string) ([]permit.Record, error)

// DirectFetch is a jurisdiction with (or slated for) a real integration.
// Until a fetch strategy is wired, Search degrades to a single record
// linking the jurisdiction's public search page.
type DirectFetch struct {
	name        string
	portal      string
	fallbackURL string
	fetch       FetchFunc
}

// NewDirectFetch creates a direct-fetch source. fetch may be nil.
func NewDirectFetch(name, portal, fallbackURL string, fetch FetchFunc) *DirectFetch {
	return &DirectFetch{name: name, portal: portal, fallbackURL: fallbackURL, fetch: fetch}
}

// NewAustin creates the City of Austin source backed by Austin Build +
// Connect. The AB+C lookup is not integrated yet, so it currently serves
// the public search page as a manual-check link.
func NewAustin(searchPageURL string) *DirectFetch {
	return NewDirectFetch("City of Austin (AB+C)", "Austin Build + Connect", searchPageURL, nil)
}

// Name implements Source.
func (d *DirectFetch) Name() string { return d.name }

// Portal implements Source.
func (d *DirectFetch) Portal() string { return d.portal }

// Search implements Source. Records and errors from the fetch strategy pass
// through unchanged; a populated permit ID in any record marks a confirmed
// hit for the dispatcher.
func (d *DirectFetch) Search(ctx context.Context, address, city, county string) ([]permit.Record, error) {
	if d.fetch != nil {
		return d.fetch(ctx, address, city, county)
	}
	return []permit.Record{{
		Jurisdiction:   d.name,
		Portal:         d.portal,
		ManualCheckURL: d.fallbackURL,
	}}, nil
}
