package adapter

import (
	"context"
	"net/url"
	"strings"

	"github.com/spyglass-realty/permit-search/internal/permit"
)

// queryPlaceholder is substituted with the URL-escaped address in manual
// search URL templates. Templates without it link to the portal entry page.
const queryPlaceholder = "{q}"

// ManualPortal is a jurisdiction without a programmatic integration. Its
// Search always returns exactly one record carrying a manual-check link to
// the jurisdiction's public search page.
type ManualPortal struct {
	name     string
	portal   string
	template string
}

// NewManualPortal creates a manual-link source for the given jurisdiction.
func NewManualPortal(name, portal, searchURLTemplate string) *ManualPortal {
	return &ManualPortal{name: name, portal: portal, template: searchURLTemplate}
}

// Name implements Source.
func (m *ManualPortal) Name() string { return m.name }

// Portal implements Source.
func (m *ManualPortal) Portal() string { return m.portal }

// Search implements Source. Deterministic and side-effect-free.
func (m *ManualPortal) Search(_ context.Context, address, _, _ string) ([]permit.Record, error) {
	checkURL := strings.ReplaceAll(m.template, queryPlaceholder, url.QueryEscape(address))
	return []permit.Record{{
		Jurisdiction:   m.name,
		Portal:         m.portal,
		ManualCheckURL: checkURL,
	}}, nil
}
