package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

const defaultPageCeiling = 10

// MinistryAdapter walks a paginated ministry-style listing. Pages for one
// source are fetched sequentially because each "has next" decision depends
// on the previous page's content.
type MinistryAdapter struct {
	cfg     SourceConfig
	fetcher Fetcher
	logger  *zap.Logger
}

func NewMinistryAdapter(cfg SourceConfig, fetcher Fetcher, logger *zap.Logger) *MinistryAdapter {
	return &MinistryAdapter{cfg: cfg, fetcher: fetcher, logger: logger.With(zap.String("source", cfg.ID))}
}

func (a *MinistryAdapter) Name() string { return a.cfg.ID }

func (a *MinistryAdapter) Fetch(ctx context.Context, opts FetchOptions) []models.Opportunity {
	ceiling := a.cfg.Pagination.MaxPages
	if ceiling <= 0 {
		ceiling = defaultPageCeiling
	}
	// Some portals render no "next" affordance on page 1 even when a second
	// page exists, so by default page 2 is probed whenever page 1 yielded
	// anything. Over-fetching one page is cheaper than silently missing
	// listings; the policy is configurable per source.
	probeSecond := true
	if a.cfg.Pagination.AlwaysProbeSecondPage != nil {
		probeSecond = *a.cfg.Pagination.AlwaysProbeSecondPage
	}

	var out []models.Opportunity
	pageOneYield := 0

	for page := 1; page <= ceiling; page++ {
		pageURL := a.pageURL(page)
		doc, err := a.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			a.logger.Warn("page fetch failed", zap.Int("page", page), zap.String("url", pageURL), zap.Error(err))
			break
		}

		gdoc, err := goquery.NewDocumentFromReader(doc.Body)
		doc.Body.Close()
		if err != nil {
			a.logger.Warn("page parse failed", zap.Int("page", page), zap.Error(err))
			break
		}

		records := parseListing(gdoc, a.cfg, pageURL, a.logger)
		if len(records) == 0 {
			break
		}
		if page == 1 {
			pageOneYield = len(records)
		}

		out = append(out, records...)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			out = out[:opts.Limit]
			break
		}

		// A sharp drop versus page 1 signals the trailing page of a listing.
		if page > 1 && len(records)*3 < pageOneYield {
			a.logger.Debug("trailing page heuristic hit", zap.Int("page", page),
				zap.Int("yield", len(records)), zap.Int("page_one_yield", pageOneYield))
			break
		}

		hasNext := a.cfg.Pagination.Next != "" && gdoc.Find(a.cfg.Pagination.Next).Length() > 0
		hasControl := a.cfg.Pagination.Control != "" && gdoc.Find(a.cfg.Pagination.Control).Length() > 0
		if !(page == 1 && probeSecond) && !hasNext && !hasControl {
			break
		}
	}

	return out
}

func (a *MinistryAdapter) pageURL(page int) string {
	if page == 1 {
		return a.cfg.BaseURL
	}
	param := a.cfg.Pagination.PageParam
	if param == "" {
		param = "page"
	}
	u, err := url.Parse(a.cfg.BaseURL)
	if err != nil {
		return fmt.Sprintf("%s?%s=%d", a.cfg.BaseURL, param, page)
	}
	q := u.Query()
	q.Set(param, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
