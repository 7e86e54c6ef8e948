package sources

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ministryPage(names ...string) []byte {
	body := "<html><body><table>"
	for _, name := range names {
		body += fmt.Sprintf(`<tr><td><a href="/b/%s">%s</a></td><td>30/06/2026</td></tr>`, name, name)
	}
	body += `</table><div class="pagination"></div></body></html>`
	return []byte(body)
}

func emptyMinistryPage() []byte {
	return []byte(`<html><body><table><tr><th>BURSARY NAME</th></tr></table></body></html>`)
}

func ministryConfig(baseURL string) SourceConfig {
	return SourceConfig{
		ID:      "test_ministry",
		Name:    "Test Ministry",
		Kind:    "ministry",
		BaseURL: baseURL,
		Type:    "bursary",
		Active:  true,
		Pagination: PaginationConfig{
			PageParam: "page",
			Control:   ".pagination",
			MaxPages:  10,
		},
	}
}

func TestMinistryAdapterStopsAfterEmptyPage(t *testing.T) {
	base := "https://ministry.example/bursaries"
	fetcher := &MockFetcher{Data: map[string][]byte{
		base:             ministryPage("County Secondary Bursary One", "County Secondary Bursary Two", "County Secondary Bursary Three"),
		base + "?page=2": ministryPage("County Secondary Bursary Four", "County Secondary Bursary Five"),
		base + "?page=3": emptyMinistryPage(),
		base + "?page=4": ministryPage("Should Never Be Fetched Entry"),
	}}
	adapter := NewMinistryAdapter(ministryConfig(base), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{})
	assert.Len(t, records, 5)

	assert.Equal(t, 1, fetcher.countRequests(base+"?page=3"))
	assert.Zero(t, fetcher.countRequests(base+"?page=4"), "walker must stop at the first empty page")
}

func TestMinistryAdapterProbesSecondPageWithoutControl(t *testing.T) {
	base := "https://ministry.example/bursaries"
	pageOne := []byte(`<html><body><table>
		<tr><td><a href="/b/1">Presidential Secondary School Bursary</a></td><td>30/06/2026</td></tr>
	</table></body></html>`)
	fetcher := &MockFetcher{Data: map[string][]byte{
		base:             pageOne,
		base + "?page=2": emptyMinistryPage(),
	}}
	adapter := NewMinistryAdapter(ministryConfig(base), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{})
	assert.Len(t, records, 1)
	assert.Equal(t, 1, fetcher.countRequests(base+"?page=2"), "page 2 is probed even with no pagination control")
}

func TestMinistryAdapterProbePolicyDisabled(t *testing.T) {
	base := "https://ministry.example/bursaries"
	pageOne := []byte(`<html><body><table>
		<tr><td><a href="/b/1">Presidential Secondary School Bursary</a></td><td>30/06/2026</td></tr>
	</table></body></html>`)
	fetcher := &MockFetcher{Data: map[string][]byte{base: pageOne}}

	cfg := ministryConfig(base)
	cfg.Pagination.Control = ""
	off := false
	cfg.Pagination.AlwaysProbeSecondPage = &off
	adapter := NewMinistryAdapter(cfg, fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{})
	assert.Len(t, records, 1)
	assert.Zero(t, fetcher.countRequests(base+"?page=2"))
}

func TestMinistryAdapterTrailingPageHeuristic(t *testing.T) {
	base := "https://ministry.example/bursaries"
	fetcher := &MockFetcher{Data: map[string][]byte{
		base: ministryPage("Bursary Listing Alpha", "Bursary Listing Beta", "Bursary Listing Gamma",
			"Bursary Listing Delta", "Bursary Listing Epsilon", "Bursary Listing Zeta"),
		base + "?page=2": ministryPage("Bursary Listing Eta"),
	}}
	adapter := NewMinistryAdapter(ministryConfig(base), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{})
	require.Len(t, records, 7)
	assert.Zero(t, fetcher.countRequests(base+"?page=3"),
		"a page yielding under a third of page 1 ends the walk")
}

func TestMinistryAdapterFetchErrorMidWalk(t *testing.T) {
	base := "https://ministry.example/bursaries"
	fetcher := &MockFetcher{
		Data:     map[string][]byte{base: ministryPage("Bursary Listing Alpha", "Bursary Listing Beta", "Bursary Listing Gamma")},
		Statuses: map[string]int{base + "?page=2": 500},
	}
	adapter := NewMinistryAdapter(ministryConfig(base), fetcher, zap.NewNop())

	records := adapter.Fetch(context.Background(), FetchOptions{})
	assert.Len(t, records, 3, "pages gathered before the failure are kept")
}
