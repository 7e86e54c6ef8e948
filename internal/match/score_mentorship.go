package match

import "github.com/elimuhub/opportunity-finder/internal/models"

// Mentorship weight table: career interest 40, focus areas vs current and
// wanted skills 30, field of study 20, location/format 10.
const (
	mentorCareerWeight   = 40
	mentorFocusWeight    = 30
	mentorFieldWeight    = 20
	mentorLocationWeight = 10
)

func scoreMentorship(p models.Profile, opp models.Opportunity) (int, []string) {
	score := 0
	var reasons []string
	details := opp.MentorshipDetails
	if details == nil {
		details = &models.MentorshipDetails{}
	}

	careerMatched := p.CareerInterest != "" &&
		(overlapFold([]string{p.CareerInterest}, details.FocusAreas) ||
			overlapFold([]string{p.CareerInterest}, opp.Eligibility.CareerInterests))
	careerOpen := p.CareerInterest == "" ||
		(len(details.FocusAreas) == 0 && len(opp.Eligibility.CareerInterests) == 0)
	score += criterion(mentorCareerWeight, careerMatched, careerOpen)
	if careerMatched {
		reasons = append(reasons, "Mentors in your career interest: "+p.CareerInterest)
	}

	own := append(append([]string{}, p.Skills...), p.SkillsWanted...)
	focusMatched := overlapFold(own, details.FocusAreas)
	focusOpen := len(own) == 0 || len(details.FocusAreas) == 0
	score += criterion(mentorFocusWeight, focusMatched, focusOpen)
	if focusMatched {
		reasons = append(reasons, "Focus areas overlap with your skills")
	}

	fieldMatched := p.FieldOfStudy != "" &&
		(overlapFold([]string{p.FieldOfStudy}, opp.Eligibility.FieldsOfStudy) ||
			overlapFold([]string{p.FieldOfStudy}, details.FocusAreas))
	fieldOpen := p.FieldOfStudy == "" ||
		(len(opp.Eligibility.FieldsOfStudy) == 0 && len(details.FocusAreas) == 0)
	score += criterion(mentorFieldWeight, fieldMatched, fieldOpen)
	if fieldMatched {
		reasons = append(reasons, "Matches your field of study: "+p.FieldOfStudy)
	}

	locMatched, locOpen := locationFit(p, opp.Eligibility)
	if looseEqual(details.Format, "online") ||
		(p.PreferredFormat != "" && looseEqual(details.Format, p.PreferredFormat)) {
		locMatched, locOpen = true, false
	}
	score += criterion(mentorLocationWeight, locMatched, locOpen)
	if locMatched {
		reasons = append(reasons, "Accessible from your location")
	}
	return score, reasons
}
