// Package api is the boundary layer. Handlers adapt HTTP requests to the
// aggregate and match packages and carry no business logic of their own.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/aggregate"
	"github.com/elimuhub/opportunity-finder/internal/ai"
	"github.com/elimuhub/opportunity-finder/internal/match"
	"github.com/elimuhub/opportunity-finder/internal/models"
	"github.com/elimuhub/opportunity-finder/internal/sources"
	"github.com/elimuhub/opportunity-finder/internal/store"
)

type Server struct {
	Echo         *echo.Echo
	Orchestrator *aggregate.Orchestrator
	Engine       *match.Engine
	Explainer    *ai.Explainer
	Store        *store.Store
	Logger       *zap.Logger
}

func NewServer(orch *aggregate.Orchestrator, explainer *ai.Explainer, st *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		Echo:         e,
		Orchestrator: orch,
		Engine:       match.NewEngine(),
		Explainer:    explainer,
		Store:        st,
		Logger:       logger,
	}

	e.GET("/health", s.handleHealth)
	v1 := e.Group("/api/v1")
	v1.GET("/opportunities", s.handleOpportunities)
	v1.GET("/opportunities/search", s.handleSearch)
	v1.GET("/opportunities/:name", s.handleDetails)
	v1.POST("/match", s.handleMatch)
	v1.POST("/sync", s.handleSync)
	return s
}

func (s *Server) Start(addr string) error {
	return s.Echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func fetchOptionsFrom(c echo.Context) sources.FetchOptions {
	opts := sources.FetchOptions{
		Type:         models.Type(c.QueryParam("type")),
		County:       c.QueryParam("county"),
		Constituency: c.QueryParam("constituency"),
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if kenyan, err := strconv.ParseBool(c.QueryParam("kenyan_only")); err == nil {
		opts.KenyanOnly = kenyan
	}
	return opts
}

func (s *Server) handleOpportunities(c echo.Context) error {
	opts := fetchOptionsFrom(c)
	result := s.Orchestrator.Run(c.Request().Context(), opts)

	filters := []aggregate.Filter{
		aggregate.ByType(opts.Type),
		aggregate.ByCounty(opts.County),
	}
	if opts.KenyanOnly {
		filters = append(filters, aggregate.KenyanOnly())
	}
	if min, err := strconv.ParseFloat(c.QueryParam("min_amount"), 64); err == nil && min > 0 {
		filters = append(filters, aggregate.ByMinAmount(min))
	}
	if upcoming, err := strconv.ParseBool(c.QueryParam("upcoming_only")); err == nil && upcoming {
		filters = append(filters, aggregate.UpcomingOnly(time.Now()))
	}
	result.Merged = aggregate.Apply(result.Merged, filters...)
	if opts.Limit > 0 && len(result.Merged) > opts.Limit {
		result.Merged = result.Merged[:opts.Limit]
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleSearch(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	result := s.Orchestrator.Run(c.Request().Context(), fetchOptionsFrom(c))
	found := aggregate.Apply(result.Merged, aggregate.ByQuery(q))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":         q,
		"opportunities": found,
		"total":         len(found),
	})
}

func (s *Server) handleDetails(c echo.Context) error {
	name := c.Param("name")
	result := s.Orchestrator.Run(c.Request().Context(), sources.FetchOptions{})
	for _, opp := range result.Merged {
		if strings.EqualFold(opp.Name, name) {
			return c.JSON(http.StatusOK, opp)
		}
	}
	// Fall back to substring match so URL-mangled names still resolve.
	if found := aggregate.Apply(result.Merged, aggregate.ByQuery(name)); len(found) > 0 {
		return c.JSON(http.StatusOK, found[0])
	}
	return echo.NewHTTPError(http.StatusNotFound, "opportunity not found")
}

type matchRequest struct {
	Profile    models.Profile       `json:"profile"`
	Candidates []models.Opportunity `json:"candidates,omitempty"`
	TopN       int                  `json:"top_n,omitempty"`
}

func (s *Server) handleMatch(c echo.Context) error {
	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	candidates := req.Candidates
	if len(candidates) == 0 {
		result := s.Orchestrator.Run(c.Request().Context(), sources.FetchOptions{})
		candidates = result.Merged
	}

	matches := match.Rank(s.Engine, req.Profile, candidates, req.TopN)

	if c.QueryParam("explain") == "1" && s.Explainer != nil {
		matches = s.Explainer.ExplainMatches(c.Request().Context(), req.Profile, matches)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"matches": matches,
		"total":   len(matches),
	})
}

func (s *Server) handleSync(c echo.Context) error {
	if s.Store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store not configured")
	}
	result := s.Orchestrator.Run(c.Request().Context(), fetchOptionsFrom(c))
	saved, err := s.Store.SaveAll(c.Request().Context(), result.Merged, result.Stats.RunID)
	if err != nil {
		s.Logger.Warn("sync finished with errors", zap.Int("saved", saved), zap.Error(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"run_id": result.Stats.RunID,
		"saved":  saved,
		"total":  len(result.Merged),
	})
}
