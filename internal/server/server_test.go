package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass-realty/permit-search/internal/geocode"
	"github.com/spyglass-realty/permit-search/internal/permit"
)

// stubResolver implements geocode.Resolver for testing.
type stubResolver struct {
	loc       *geocode.Location
	err       error
	callCount int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*geocode.Location, error) {
	s.callCount++
	return s.loc, s.err
}

// stubSearcher implements Searcher, echoing what it was dispatched with.
type stubSearcher struct {
	callCount  int
	gotCity    string
	gotCounty  string
	gotAddress string
}

func (s *stubSearcher) Dispatch(_ context.Context, address, city, county string) permit.SearchResult {
	s.callCount++
	s.gotAddress = address
	s.gotCity = city
	s.gotCounty = county
	return permit.SearchResult{
		AddressInput:   address,
		ResolvedCity:   city,
		ResolvedCounty: county,
		Hits: []permit.Record{{
			Jurisdiction:   "City of Austin (AB+C)",
			Portal:         "Austin Build + Connect",
			ManualCheckURL: "https://abc.austintexas.gov/web/permit/public-search-other",
		}},
		Checked: []string{"City of Austin (AB+C)"},
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(&stubResolver{loc: &geocode.Location{}}, &stubSearcher{})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSearchPermits_Success(t *testing.T) {
	resolver := &stubResolver{loc: &geocode.Location{City: "Austin", County: "Travis County"}}
	searcher := &stubSearcher{}
	router := New(resolver, searcher).Router()

	req := httptest.NewRequest(http.MethodGet, "/search_permits?address=301+W+2nd+St%2C+Austin%2C+TX", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, resolver.callCount)
	assert.Equal(t, 1, searcher.callCount)
	assert.Equal(t, "301 W 2nd St, Austin, TX", searcher.gotAddress)
	assert.Equal(t, "Austin", searcher.gotCity)
	assert.Equal(t, "Travis County", searcher.gotCounty)

	var result permit.SearchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "301 W 2nd St, Austin, TX", result.AddressInput)
	assert.Equal(t, []string{"City of Austin (AB+C)"}, result.Checked)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "City of Austin (AB+C)", result.Hits[0].Jurisdiction)
}

func TestSearchPermits_EmptyAddressRejectedBeforeDispatch(t *testing.T) {
	resolver := &stubResolver{loc: &geocode.Location{}}
	searcher := &stubSearcher{}
	router := New(resolver, searcher).Router()

	for _, target := range []string{"/search_permits", "/search_permits?address=", "/search_permits?address=%20%20"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "address is required", body["error"])
	}

	// Neither collaborator is ever reached.
	assert.Equal(t, 0, resolver.callCount)
	assert.Equal(t, 0, searcher.callCount)
}

func TestSearchPermits_GeocodeFailureDegrades(t *testing.T) {
	resolver := &stubResolver{err: eris.New("nominatim unreachable")}
	searcher := &stubSearcher{}
	router := New(resolver, searcher).Router()

	req := httptest.NewRequest(http.MethodGet, "/search_permits?address=100+Main+St", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	// The cascade still runs, with absent city/county.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, searcher.callCount)
	assert.Empty(t, searcher.gotCity)
	assert.Empty(t, searcher.gotCounty)
}

func TestRequestIDHeader(t *testing.T) {
	router := New(&stubResolver{loc: &geocode.Location{}}, &stubSearcher{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	// An inbound request ID is echoed back.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}
