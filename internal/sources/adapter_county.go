package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// CountyAdapter probes a county portal for its bursary page. County sites
// restructure constantly, so an ordered list of candidate sub-paths is tried
// until one returns usable content. "Endpoint moved" and "no data" degrade
// identically to an empty result; callers cannot and should not tell them
// apart at this layer.
type CountyAdapter struct {
	cfg     SourceConfig
	fetcher Fetcher
	logger  *zap.Logger
}

func NewCountyAdapter(cfg SourceConfig, fetcher Fetcher, logger *zap.Logger) *CountyAdapter {
	return &CountyAdapter{cfg: cfg, fetcher: fetcher, logger: logger.With(zap.String("source", cfg.ID))}
}

func (a *CountyAdapter) Name() string { return a.cfg.ID }

func (a *CountyAdapter) Fetch(ctx context.Context, opts FetchOptions) []models.Opportunity {
	if opts.County == "" {
		// Nothing to scope the probe to; the national sources cover this case.
		return nil
	}

	base := a.cfg.BaseURL
	if strings.Contains(base, "%s") {
		base = fmt.Sprintf(base, countySlug(opts.County))
	}

	for _, path := range a.cfg.ProbePaths {
		candidate := strings.TrimSuffix(base, "/") + path
		records := a.probe(ctx, candidate, opts)
		if len(records) > 0 {
			return records
		}
	}

	a.logger.Info("no probe path yielded records", zap.String("county", opts.County))
	return nil
}

func (a *CountyAdapter) probe(ctx context.Context, candidate string, opts FetchOptions) []models.Opportunity {
	doc, err := a.fetcher.Fetch(ctx, candidate)
	if err != nil {
		// Non-200s here mean "try the next path", not a failure of the source.
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			a.logger.Debug("probe path rejected", zap.String("url", candidate), zap.Int("status", statusErr.Code))
		} else {
			a.logger.Warn("probe fetch failed", zap.String("url", candidate), zap.Error(err))
		}
		return nil
	}
	defer doc.Body.Close()

	gdoc, err := goquery.NewDocumentFromReader(doc.Body)
	if err != nil {
		a.logger.Warn("probe parse failed", zap.String("url", candidate), zap.Error(err))
		return nil
	}

	records := parseListing(gdoc, a.cfg, candidate, a.logger)
	for i := range records {
		records[i].Eligibility.Counties = mergeUniqueFold(records[i].Eligibility.Counties, []string{opts.County})
		if records[i].Provider == "" {
			records[i].Provider = opts.County + " County Government"
		}
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	return records
}
