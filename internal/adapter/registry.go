package adapter

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Registry is the fixed ordered list of permit sources. Order is
// significant: it is the cascade's default try order. Immutable once built.
type Registry struct {
	sources []Source
}

// NewRegistry builds a registry from sources in the given order.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// Sources returns the sources in registry order. The returned slice is a
// copy; callers may reorder it freely.
func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.sources)
}

// Default builds the built-in jurisdiction table: the given default-region
// source first, then Travis-area cities, Hays County and its cities, then
// the Harris County / Houston region.
func Default(first Source) *Registry {
	return NewRegistry(
		first,

		// Travis County & nearby cities
		NewManualPortal("City of Round Rock", "Tyler CSS", "https://permits.roundrocktexas.gov/portal/"),
		NewManualPortal("City of Pflugerville", "PublicAccess", "https://ams.pflugervilletx.gov/PublicAccess/default.aspx"),
		NewManualPortal("City of Cedar Park", "MyGovernmentOnline", "https://www.mygovernmentonline.org/"),
		NewManualPortal("City of Georgetown", "MyGovernmentOnline", "https://www.mygovernmentonline.org/"),
		NewManualPortal("City of Leander", "Tyler CSS", "https://permits.leandertx.gov/portal/"),
		NewManualPortal("City of Hutto", "GovWell", "https://huttotx.portal.iworq.net/portalhome/huttotx"),
		NewManualPortal("Travis County (TNR)", "E-Permitting", "https://www.traviscountytx.gov/tnr/permits"),

		// Hays County & cities
		NewManualPortal("Hays County", "Inspections & Permitting", "https://hayscountytx.com/departments/development-services/inspections-and-permitting/"),
		NewManualPortal("City of Buda", "MyGovernmentOnline", "https://www.mygovernmentonline.org/"),
		NewManualPortal("City of Kyle", "Tyler CSS", "https://etrakit.cityofkyle.com/"),
		NewManualPortal("City of San Marcos", "Permit Portal", "https://sanmarcostx.gov/1783/Permits-Inspections"),

		// Harris County / Houston
		NewManualPortal("Harris County", "ePermits", "https://www.hcpid.org/epermits"),
		NewManualPortal("City of Houston", "Houston Permit Portal", "https://www.houstonpermittingcenter.org/permits"),
	)
}

// registryEntry is one manual-link jurisdiction in a registry file.
type registryEntry struct {
	Name      string `yaml:"name"`
	Portal    string `yaml:"portal"`
	SearchURL string `yaml:"search_url"`
}

// Load reads manual-link jurisdictions from a YAML registry file, keeping
// the given default-region source in position 1 ahead of them.
func Load(path string, first Source) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "adapter: read registry %s", path)
	}

	// The YAML has a top-level "registry" key
	var wrapper struct {
		Registry []registryEntry `yaml:"registry"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "adapter: parse registry")
	}

	sources := make([]Source, 0, len(wrapper.Registry)+1)
	sources = append(sources, first)
	for _, e := range wrapper.Registry {
		if e.Name == "" || e.SearchURL == "" {
			return nil, eris.Errorf("adapter: registry entry missing name or search_url (name=%q)", e.Name)
		}
		sources = append(sources, NewManualPortal(e.Name, e.Portal, e.SearchURL))
	}
	return NewRegistry(sources...), nil
}
