// Package adapter defines the per-jurisdiction permit sources and the
// ordered registry the cascade dispatcher walks.
package adapter

import (
	"context"

	"github.com/spyglass-realty/permit-search/internal/permit"
)

// Source is one jurisdiction's permit lookup. Search returns an empty slice
// for a normal "no data found"; errors are reserved for transport or
// provider failures, which the dispatcher tolerates by skipping the source.
type Source interface {
	Name() string
	Portal() string
	Search(ctx context.Context, address, city, county string) ([]permit.Record, error)
}
