package sources

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// FetchedDocument is the raw result of a fetch operation.
type FetchedDocument struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
	FetchedAt   time.Time
	Headers     map[string][]string
}

// Fetcher retrieves raw content from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedDocument, error)
}

// StatusError is returned by fetchers for non-200 responses so callers that
// care (the fallback prober) can tell a 404 from a network failure.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.Code, e.URL)
}

// FetchOptions scope a single aggregation run.
type FetchOptions struct {
	Limit        int         `json:"limit,omitempty"`
	Type         models.Type `json:"type,omitempty"`
	County       string      `json:"county,omitempty"`
	Constituency string      `json:"constituency,omitempty"`
	KenyanOnly   bool        `json:"kenyan_only,omitempty"`
}

// Adapter is a source-specific fetch+parse unit. Fetch never returns an
// error: on any network, status or parse failure it logs the cause and
// returns an empty slice, so one broken source cannot poison a run.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, opts FetchOptions) []models.Opportunity
}
