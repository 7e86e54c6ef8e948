package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// MockFetcher serves canned page bodies by URL and records every request.
// URLs in Statuses return a StatusError instead of a body.
type MockFetcher struct {
	Data     map[string][]byte
	Statuses map[string]int
	Requests []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*FetchedDocument, error) {
	m.Requests = append(m.Requests, url)
	if code, ok := m.Statuses[url]; ok {
		return nil, &StatusError{URL: url, Code: code}
	}
	content, ok := m.Data[url]
	if !ok {
		return nil, fmt.Errorf("mock fetch: no fixture for %s", url)
	}
	return &FetchedDocument{
		URL:        url,
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader(content)),
		Headers:    make(map[string][]string),
		FetchedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (m *MockFetcher) countRequests(url string) int {
	n := 0
	for _, r := range m.Requests {
		if r == url {
			n++
		}
	}
	return n
}
