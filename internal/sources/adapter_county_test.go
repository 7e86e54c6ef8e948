package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countyConfig() SourceConfig {
	return SourceConfig{
		ID:         "test_county",
		Name:       "County Bursary Probe",
		Kind:       "county",
		BaseURL:    "https://%s.go.ke",
		Type:       "bursary",
		Active:     true,
		ProbePaths: []string{"/bursaries", "/education/bursaries"},
	}
}

const countyBursaryHTML = `<html><body><table>
<tr><td><a href="/apply">Ward Education Bursary Fund</a></td><td>30/09/2026</td><td>Ksh 15,000</td></tr>
</table></body></html>`

func TestCountyAdapterFallsBackPastNotFound(t *testing.T) {
	fetcher := &MockFetcher{
		Data:     map[string][]byte{"https://kisumu.go.ke/education/bursaries": []byte(countyBursaryHTML)},
		Statuses: map[string]int{"https://kisumu.go.ke/bursaries": 404},
	}
	adapter := NewCountyAdapter(countyConfig(), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{County: "Kisumu"})
	require.Len(t, records, 1, "the 404 on the first path must not surface as a failure")

	got := records[0]
	assert.Equal(t, "Ward Education Bursary Fund", got.Name)
	assert.Equal(t, []string{"Kisumu"}, got.Eligibility.Counties)
	assert.Equal(t, "Kisumu County Government", got.Provider)
	assert.Equal(t, []string{
		"https://kisumu.go.ke/bursaries",
		"https://kisumu.go.ke/education/bursaries",
	}, fetcher.Requests)
}

func TestCountyAdapterStopsAtFirstYieldingPath(t *testing.T) {
	fetcher := &MockFetcher{
		Data: map[string][]byte{"https://nakuru.go.ke/bursaries": []byte(countyBursaryHTML)},
	}
	adapter := NewCountyAdapter(countyConfig(), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{County: "Nakuru"})
	require.Len(t, records, 1)
	assert.Equal(t, []string{"https://nakuru.go.ke/bursaries"}, fetcher.Requests)
}

func TestCountyAdapterNoCountyNoProbe(t *testing.T) {
	fetcher := &MockFetcher{}
	adapter := NewCountyAdapter(countyConfig(), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{})
	assert.Empty(t, records)
	assert.Empty(t, fetcher.Requests)
}

func TestCountyAdapterAllPathsExhausted(t *testing.T) {
	fetcher := &MockFetcher{
		Statuses: map[string]int{
			"https://narok.go.ke/bursaries":           404,
			"https://narok.go.ke/education/bursaries": 403,
		},
	}
	adapter := NewCountyAdapter(countyConfig(), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{County: "Narok"})
	assert.Empty(t, records)
	assert.Len(t, fetcher.Requests, 2)
}
