package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// PortalAdapter handles single-page listing portals: fetch one page, try the
// extraction strategies, map rows to records.
type PortalAdapter struct {
	cfg     SourceConfig
	fetcher Fetcher
	logger  *zap.Logger
}

func NewPortalAdapter(cfg SourceConfig, fetcher Fetcher, logger *zap.Logger) *PortalAdapter {
	return &PortalAdapter{cfg: cfg, fetcher: fetcher, logger: logger.With(zap.String("source", cfg.ID))}
}

func (a *PortalAdapter) Name() string { return a.cfg.ID }

func (a *PortalAdapter) Fetch(ctx context.Context, opts FetchOptions) []models.Opportunity {
	doc, err := a.fetcher.Fetch(ctx, a.cfg.BaseURL)
	if err != nil {
		a.logger.Warn("fetch failed", zap.String("url", a.cfg.BaseURL), zap.Error(err))
		return nil
	}
	defer doc.Body.Close()

	gdoc, err := goquery.NewDocumentFromReader(doc.Body)
	if err != nil {
		a.logger.Warn("parse failed", zap.String("url", a.cfg.BaseURL), zap.Error(err))
		return nil
	}

	records := parseListing(gdoc, a.cfg, a.cfg.BaseURL, a.logger)
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	return records
}

// parseListing extracts all usable records from one listing page. Rows whose
// name fails the usability check are dropped here, before the record ever
// leaves the adapter.
func parseListing(gdoc *goquery.Document, cfg SourceConfig, pageURL string, logger *zap.Logger) []models.Opportunity {
	rows, strategy := selectRows(gdoc, cfg.Selectors.Containers)
	if rows == nil {
		logger.Warn("no extraction strategy matched", zap.String("url", pageURL))
		return nil
	}

	var out []models.Opportunity
	rows.Each(func(i int, sel *goquery.Selection) {
		f := extractRow(sel, cfg.Selectors)
		if !models.UsableName(f.Name) {
			return
		}
		out = append(out, recordFromFields(f, cfg, pageURL))
	})

	logger.Debug("extracted listing page",
		zap.String("url", pageURL),
		zap.String("strategy", strategy),
		zap.Int("rows", rows.Length()),
		zap.Int("kept", len(out)))
	return out
}

func recordFromFields(f rowFields, cfg SourceConfig, pageURL string) models.Opportunity {
	opp := models.Opportunity{
		Name:            cleanText(f.Name),
		Provider:        cfg.Provider,
		Type:            inferType(f.Name+" "+f.Summary, models.Type(cfg.Type)),
		Description:     cleanText(f.Summary),
		Amount:          cleanText(f.Amount),
		Duration:        cleanText(f.Duration),
		ApplicationLink: resolveURL(pageURL, f.Link),
		Priority:        cfg.Priority,
		Source:          cfg.ID,
	}

	// A deadline is kept only when it parses to a real calendar date.
	if t, ok := ParseDeadline(f.Deadline); ok {
		opp.ApplicationDeadline = t.Format(ISODate)
	}

	if loc := cleanText(f.Location); loc != "" {
		lower := strings.ToLower(loc)
		switch {
		case strings.Contains(lower, "nationwide") || strings.EqualFold(loc, "Kenya"):
			opp.Eligibility.Countries = []string{"Kenya"}
		default:
			for _, county := range KenyanCounties {
				if strings.Contains(lower, strings.ToLower(county)) {
					opp.Eligibility.Counties = append(opp.Eligibility.Counties, county)
				}
			}
		}
	}

	return opp
}
