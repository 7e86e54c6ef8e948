package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// Completer is the narrow slice of the Ollama client the explainer needs.
type Completer interface {
	GenerateCompletion(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// Explainer turns a scored match into a short piece of guidance for the
// requester.
type Explainer struct {
	client Completer
	logger *zap.Logger
}

func NewExplainer(client Completer, logger *zap.Logger) *Explainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explainer{client: client, logger: logger}
}

type explanationPayload struct {
	Explanation        string   `json:"explanation"`
	RecommendationTier string   `json:"recommendation_tier"`
	Suggestions        []string `json:"suggestions"`
}

// Explain produces commentary for one match.
func (e *Explainer) Explain(ctx context.Context, profile models.Profile, m models.Match) (*models.Explanation, error) {
	prompt := fmt.Sprintf(`You are a student opportunity advisor in Kenya. A student matched an opportunity with a score of %d out of 100.

STUDENT: county %q, grade %d, curriculum %q, career interest %q.
OPPORTUNITY: %q by %q (%s). %s
MATCH REASONS: %s

Return a JSON object:
{
  "explanation": "2-3 sentences on why this is or is not a strong fit",
  "recommendation_tier": "apply_now" | "worth_considering" | "backup_option",
  "suggestions": ["1-3 concrete actions to strengthen the application"]
}
RESPOND ONLY WITH JSON.`,
		m.Score,
		profile.County, profile.Grade, profile.Curriculum, profile.CareerInterest,
		m.Opportunity.Name, m.Opportunity.Provider, m.Opportunity.Type,
		m.Opportunity.Description,
		strings.Join(m.Reasons, "; "))

	resp, err := e.client.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var payload explanationPayload
	if err := json.Unmarshal([]byte(resp), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse explanation json: %w", err)
	}
	return &models.Explanation{
		Text:               payload.Explanation,
		RecommendationTier: payload.RecommendationTier,
		Suggestions:        payload.Suggestions,
	}, nil
}

// ExplainMatches annotates an already-ranked slice in place. Any failure
// leaves the affected match without an explanation; the slice is never
// shortened or reordered.
func (e *Explainer) ExplainMatches(ctx context.Context, profile models.Profile, matches []models.Match) []models.Match {
	for i := range matches {
		explanation, err := e.Explain(ctx, profile, matches[i])
		if err != nil {
			e.logger.Warn("explanation skipped",
				zap.String("opportunity", matches[i].Opportunity.Name),
				zap.Error(err))
			continue
		}
		matches[i].Explanation = explanation
	}
	return matches
}
