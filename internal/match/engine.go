// Package match scores opportunities against a requester profile and ranks
// the results. Scoring is pure: no I/O, no clock, no randomness.
package match

import (
	"fmt"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// highPriorityFloor is the Priority value at or above which an education
// listing earns the prominence bonus.
const highPriorityFloor = 5

// Engine scores one opportunity against one profile using type-specific
// weight tables. Each table's weights sum to 100; bonuses on top are capped
// and the final score is clamped to [0,100].
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Score computes a full Match for one (profile, opportunity) pair. It never
// fails: absent profile or opportunity fields earn partial or zero weight,
// not errors.
func (e *Engine) Score(profile models.Profile, opp models.Opportunity) models.Match {
	var score int
	var reasons []string

	switch opp.Type {
	case models.TypeBootcamp:
		score, reasons = scoreBootcamp(profile, opp)
	case models.TypeLearning:
		score, reasons = scoreLearning(profile, opp)
	case models.TypeMentorship:
		score, reasons = scoreMentorship(profile, opp)
	case models.TypeInternship:
		score, reasons = scoreInternship(profile, opp)
	default:
		score, reasons = scoreEducation(profile, opp)
	}

	return models.Match{
		Opportunity:      opp,
		Score:            clamp(score),
		Reasons:          reasons,
		ApplicationSteps: applicationSteps(opp),
		EstimatedChance:  chance(clamp(score)),
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// chance maps a score to its likelihood bucket. The boundaries are part of
// the engine's contract and must hold exactly.
func chance(score int) models.Chance {
	switch {
	case score >= 70:
		return models.ChanceHigh
	case score >= 40:
		return models.ChanceMedium
	default:
		return models.ChanceLow
	}
}

// applicationSteps derives a checklist from the opportunity alone; the
// profile never influences it.
func applicationSteps(opp models.Opportunity) []string {
	steps := []string{fmt.Sprintf("Review the eligibility criteria for %s", opp.Name)}

	if len(opp.Documents) > 0 {
		steps = append(steps, "Gather the required documents: "+joinList(opp.Documents))
	} else if len(opp.Requirements) > 0 {
		steps = append(steps, "Prepare the stated requirements: "+joinList(opp.Requirements))
	}

	switch {
	case opp.ApplicationLink != "":
		steps = append(steps, "Apply online at "+opp.ApplicationLink)
	case opp.ContactInfo != nil && opp.ContactInfo.Email != "":
		steps = append(steps, "Send your application to "+opp.ContactInfo.Email)
	case opp.ContactInfo != nil && opp.ContactInfo.Phone != "":
		steps = append(steps, "Call "+opp.ContactInfo.Phone+" for application instructions")
	default:
		steps = append(steps, "Contact "+providerOrSource(opp)+" for application instructions")
	}

	if opp.ApplicationDeadline != "" {
		steps = append(steps, "Submit before the deadline: "+opp.ApplicationDeadline)
	}
	return steps
}

func providerOrSource(opp models.Opportunity) string {
	if opp.Provider != "" {
		return opp.Provider
	}
	if opp.Source != "" {
		return opp.Source
	}
	return "the provider"
}
