package gbif

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redlist_dashboard/internal/taxon"
)

func newTestSource(t *testing.T) *Source {
	t.Helper()
	s := New(Config{
		BaseURL:     "https://api.gbif.org/v1",
		Timeout:     5 * time.Second,
		FacetLimit:  100,
		MaxAttempts: 3,
		BackoffStep: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	httpmock.ActivateNonDefault(s.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	return s
}

func TestFetchFacetPage(t *testing.T) {
	s := newTestSource(t)
	filter := taxon.GBIFFilter{Param: "classKey", Key: 359}

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.gbif.org/v1/occurrence/search",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "359", q.Get("classKey"))
			assert.Equal(t, "speciesKey", q.Get("facet"))
			assert.Equal(t, "100", q.Get("facetLimit"))
			assert.Equal(t, "200", q.Get("facetOffset"))
			assert.Equal(t, "0", q.Get("limit"))

			body := `{
				"count": 123456,
				"facets": [
					{
						"field": "SPECIES_KEY",
						"counts": [
							{"name": "2482444", "count": 120345},
							{"name": "5219404", "count": 17},
							{"name": "not-a-key", "count": 3}
						]
					}
				]
			}`
			return httpmock.NewStringResponse(200, body), nil
		})

	occurrences, err := s.FetchFacetPage(context.Background(), filter, 200)
	require.NoError(t, err)

	require.Len(t, occurrences, 2, "non-numeric facet names skipped")
	assert.Equal(t, int64(2482444), occurrences[0].SpeciesKey)
	assert.Equal(t, int64(120345), occurrences[0].Count)
	assert.Equal(t, int64(5219404), occurrences[1].SpeciesKey)
}

func TestFetchFacetPage_Exhausted(t *testing.T) {
	s := newTestSource(t)

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.gbif.org/v1/occurrence/search",
		httpmock.NewStringResponder(200, `{"count": 0, "facets": [{"field": "SPECIES_KEY", "counts": []}]}`))

	occurrences, err := s.FetchFacetPage(context.Background(), taxon.GBIFFilter{Param: "classKey", Key: 212}, 5000)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestFetchFacetPage_IgnoresOtherFacets(t *testing.T) {
	s := newTestSource(t)

	body := `{
		"facets": [
			{"field": "COUNTRY", "counts": [{"name": "DE", "count": 999}]},
			{"field": "SPECIES_KEY", "counts": [{"name": "42", "count": 7}]}
		]
	}`
	httpmock.RegisterResponder(http.MethodGet,
		"https://api.gbif.org/v1/occurrence/search",
		httpmock.NewStringResponder(200, body))

	occurrences, err := s.FetchFacetPage(context.Background(), taxon.GBIFFilter{Param: "classKey", Key: 212}, 0)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, int64(42), occurrences[0].SpeciesKey)
}

func TestFetchFacetPage_RetriesOn429(t *testing.T) {
	s := newTestSource(t)

	calls := 0
	httpmock.RegisterResponder(http.MethodGet,
		"https://api.gbif.org/v1/occurrence/search",
		func(*http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(429, ""), nil
			}
			return httpmock.NewStringResponse(200, `{"facets": []}`), nil
		})

	_, err := s.FetchFacetPage(context.Background(), taxon.GBIFFilter{Param: "classKey", Key: 212}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMatchSpecies(t *testing.T) {
	s := newTestSource(t)

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.gbif.org/v1/species/match",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Loxodonta africana", req.URL.Query().Get("name"))
			return httpmock.NewStringResponse(200,
				`{"usageKey": 5219404, "matchType": "EXACT", "rank": "SPECIES", "canonicalName": "Loxodonta africana"}`), nil
		})

	key, matchType, err := s.MatchSpecies(context.Background(), "Loxodonta africana")
	require.NoError(t, err)
	assert.Equal(t, int64(5219404), key)
	assert.Equal(t, "EXACT", matchType)
}

func TestMatchSpecies_None(t *testing.T) {
	s := newTestSource(t)

	httpmock.RegisterResponder(http.MethodGet,
		"https://api.gbif.org/v1/species/match",
		httpmock.NewStringResponder(200, `{"matchType": "NONE", "usageKey": 0}`))

	key, matchType, err := s.MatchSpecies(context.Background(), "Nonexistus speciesus")
	require.NoError(t, err)
	assert.Equal(t, int64(0), key)
	assert.Equal(t, MatchTypeNone, matchType)
}
