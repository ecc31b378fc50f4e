// Package permit holds the domain types shared by the adapters, the cascade
// dispatcher, and the API surface.
package permit

// Record is one result unit from a jurisdiction's permit source.
// A populated PermitID marks a confirmed hit from a real integration;
// manual-link sources populate ManualCheckURL instead.
type Record struct {
	Jurisdiction   string         `json:"jurisdiction"`
	Portal         string         `json:"portal"`
	PermitID       string         `json:"permit_id,omitempty"`
	Address        string         `json:"address,omitempty"`
	Type           string         `json:"type,omitempty"`
	Status         string         `json:"status,omitempty"`
	IssuedDate     string         `json:"issued_date,omitempty"`
	Link           string         `json:"link,omitempty"`
	ManualCheckURL string         `json:"manual_check_url,omitempty"`
	Raw            map[string]any `json:"raw,omitempty"`
}

// Confirmed reports whether the record is a confirmed real hit.
func (r Record) Confirmed() bool {
	return r.PermitID != ""
}

// SearchResult aggregates one cascade run. Hits accumulate in adapter try
// order; Checked lists every adapter attempted, in order, regardless of
// outcome.
type SearchResult struct {
	AddressInput   string   `json:"address_input"`
	ResolvedCity   string   `json:"resolved_city,omitempty"`
	ResolvedCounty string   `json:"resolved_county,omitempty"`
	Hits           []Record `json:"hits"`
	Checked        []string `json:"checked"`
}
