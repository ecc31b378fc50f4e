package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_OrderAndSize(t *testing.T) {
	austin := NewAustin("https://abc.austintexas.gov/web/permit/public-search-other")
	reg := Default(austin)

	require.Equal(t, 14, reg.Len())

	names := make([]string, 0, reg.Len())
	for _, s := range reg.Sources() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"City of Austin (AB+C)",
		"City of Round Rock",
		"City of Pflugerville",
		"City of Cedar Park",
		"City of Georgetown",
		"City of Leander",
		"City of Hutto",
		"Travis County (TNR)",
		"Hays County",
		"City of Buda",
		"City of Kyle",
		"City of San Marcos",
		"Harris County",
		"City of Houston",
	}, names)
}

func TestSources_ReturnsCopy(t *testing.T) {
	reg := Default(NewAustin(""))

	sources := reg.Sources()
	sources[0], sources[1] = sources[1], sources[0]

	// The registry's own order is untouched.
	assert.Equal(t, "City of Austin (AB+C)", reg.Sources()[0].Name())
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adapters.yaml")
	yaml := `
registry:
  - name: City of Bastrop
    portal: MyGovernmentOnline
    search_url: https://www.mygovernmentonline.org/
  - name: Bastrop County
    portal: Development Services
    search_url: https://www.co.bastrop.tx.us/page/co.development_services?q={q}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	austin := NewAustin("")
	reg, err := Load(path, austin)
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	sources := reg.Sources()
	assert.Equal(t, "City of Austin (AB+C)", sources[0].Name())
	assert.Equal(t, "City of Bastrop", sources[1].Name())
	assert.Equal(t, "MyGovernmentOnline", sources[1].Portal())
	assert.Equal(t, "Bastrop County", sources[2].Name())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), NewAustin(""))
	assert.Error(t, err)
}

func TestLoad_EntryMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adapters.yaml")
	yaml := `
registry:
  - portal: MyGovernmentOnline
    search_url: https://www.mygovernmentonline.org/
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	_, err := Load(path, NewAustin(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name or search_url")
}
