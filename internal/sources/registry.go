package sources

import (
	"embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the configuration for all data sources.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// FetchConfig defines HTTP fetching configuration for a source.
type FetchConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds,omitempty"` // default 15, range 8-30 per source reliability
	MaxRetries     int  `yaml:"max_retries,omitempty"`
	InsecureTLS    bool `yaml:"insecure_tls,omitempty"` // legacy county/government portals with broken certs
	UseColly       bool `yaml:"use_colly,omitempty"`    // bot-sensitive portals
}

// SelectorConfig lists the ordered structural selectors an adapter tries and
// the per-row field selectors, all optional. Extraction falls back to the
// built-in strategies when a selector is empty.
type SelectorConfig struct {
	Containers []string `yaml:"containers,omitempty"` // tried in order, first that yields rows wins
	Name       string   `yaml:"name,omitempty"`
	Link       string   `yaml:"link,omitempty"`
	Deadline   string   `yaml:"deadline,omitempty"`
	Amount     string   `yaml:"amount,omitempty"`
	Duration   string   `yaml:"duration,omitempty"`
	Location   string   `yaml:"location,omitempty"`
	Summary    string   `yaml:"summary,omitempty"`
}

// PaginationConfig controls the ministry-style pagination walker.
type PaginationConfig struct {
	PageParam             string `yaml:"page_param,omitempty"` // query parameter, e.g. "page"
	Next                  string `yaml:"next,omitempty"`       // CSS selector for a "next page" affordance
	Control               string `yaml:"control,omitempty"`    // CSS selector for any pagination control
	MaxPages              int    `yaml:"max_pages,omitempty"`  // hard ceiling, default 10
	AlwaysProbeSecondPage *bool  `yaml:"always_probe_second_page,omitempty"`
}

// SourceConfig defines a single data source.
type SourceConfig struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	Kind       string           `yaml:"kind"` // portal, ministry, county
	BaseURL    string           `yaml:"base_url,omitempty"`
	Provider   string           `yaml:"provider,omitempty"`
	Type       string           `yaml:"default_type,omitempty"` // default opportunity type for this source
	Priority   int              `yaml:"priority,omitempty"`
	Active     bool             `yaml:"active"`
	Fetch      FetchConfig      `yaml:"fetch,omitempty"`
	Selectors  SelectorConfig   `yaml:"selectors,omitempty"`
	Pagination PaginationConfig `yaml:"pagination,omitempty"`
	ProbePaths []string         `yaml:"probe_paths,omitempty"` // county fallback prober candidates
}

// LoadRegistry reads the source registry from path, or from the embedded
// sources.yaml when path is empty.
func LoadRegistry(path string) (*Registry, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = sourcesYAML.ReadFile("config/sources.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("load source registry: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var reg Registry
	if err := yaml.Unmarshal([]byte(expanded), &reg); err != nil {
		return nil, fmt.Errorf("parse source registry: %w", err)
	}

	return &reg, nil
}

// BuildAdapters instantiates one adapter per active source in the registry.
func BuildAdapters(reg *Registry, logger *zap.Logger) []Adapter {
	adapters := make([]Adapter, 0, len(reg.Sources))
	for _, cfg := range reg.Sources {
		if !cfg.Active {
			continue
		}
		fetcher := fetcherFor(cfg.Fetch)
		switch cfg.Kind {
		case "ministry":
			adapters = append(adapters, NewMinistryAdapter(cfg, fetcher, logger))
		case "county":
			adapters = append(adapters, NewCountyAdapter(cfg, fetcher, logger))
		default:
			adapters = append(adapters, NewPortalAdapter(cfg, fetcher, logger))
		}
	}
	return adapters
}

func fetcherFor(cfg FetchConfig) Fetcher {
	if cfg.UseColly {
		return NewCollyFetcher(cfg)
	}
	return NewHTTPFetcher(cfg)
}
