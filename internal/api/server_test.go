package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/opportunity-finder/internal/aggregate"
	"github.com/elimuhub/opportunity-finder/internal/models"
	"github.com/elimuhub/opportunity-finder/internal/sources"
)

type fixedAdapter struct {
	name    string
	records []models.Opportunity
}

func (f *fixedAdapter) Name() string { return f.name }

func (f *fixedAdapter) Fetch(ctx context.Context, opts sources.FetchOptions) []models.Opportunity {
	return f.records
}

func testServer() *Server {
	adapter := &fixedAdapter{name: "fixture", records: []models.Opportunity{
		{
			Name:        "Wings to Fly Scholarship",
			Type:        models.TypeScholarship,
			Description: "Secondary school scholarship for bright needy students countrywide.",
			Eligibility: models.Eligibility{Counties: []string{"Nairobi"}},
		},
		{
			Name:        "Talanta Tech Bootcamp",
			Type:        models.TypeBootcamp,
			Description: "Twelve week software engineering training program in Nairobi.",
		},
	}}
	orch := aggregate.NewOrchestrator([]sources.Adapter{adapter}, aggregate.NewCache(time.Minute), nil)
	return NewServer(orch, nil, nil, nil)
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestOpportunitiesEndpoint(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?type=bootcamp", nil)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result aggregate.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Merged, 1)
	assert.Equal(t, "Talanta Tech Bootcamp", result.Merged[0].Name)
	assert.NotEmpty(t, result.Stats.RunID)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities/search", nil)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities/search?q=wings", nil)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wings to Fly Scholarship")
}

func TestDetailsEndpointNotFound(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities/nonexistent", nil)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatchEndpointWithCandidates(t *testing.T) {
	srv := testServer()
	body := `{
		"profile": {"county": "Nairobi", "grade": 9, "curriculum": "CBC"},
		"candidates": [{
			"name": "Perfect Fit Scholarship",
			"type": "scholarship",
			"eligibility": {"counties": ["Nairobi"], "min_grade": 9, "max_grade": 12, "curriculum": ["CBC"]}
		}],
		"top_n": 5
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Matches []models.Match `json:"matches"`
		Total   int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, models.ChanceHigh, resp.Matches[0].EstimatedChance)
	assert.NotEmpty(t, resp.Matches[0].Reasons)
}

func TestSyncWithoutStore(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
