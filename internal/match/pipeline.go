package match

import (
	"sort"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// Rank scores every candidate against the profile, drops zero scores, sorts
// descending (ties keep candidate order) and truncates to topN. topN <= 0
// means unbounded. Pure: no I/O, deterministic for a given input.
func Rank(engine *Engine, profile models.Profile, candidates []models.Opportunity, topN int) []models.Match {
	matches := make([]models.Match, 0, len(candidates))
	for _, opp := range candidates {
		m := engine.Score(profile, opp)
		if m.Score == 0 {
			continue
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}
