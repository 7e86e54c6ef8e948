package match

import "github.com/elimuhub/opportunity-finder/internal/models"

// Internship weight table: career interest 35, stated requirements vs
// skills 35, field of study 20, location/format 10. Bonus: +2 stipend.
const (
	internCareerWeight   = 35
	internSkillsWeight   = 35
	internFieldWeight    = 20
	internLocationWeight = 10
	internStipendBonus   = 2
)

func scoreInternship(p models.Profile, opp models.Opportunity) (int, []string) {
	score := 0
	var reasons []string
	details := opp.InternshipDetails
	if details == nil {
		details = &models.InternshipDetails{}
	}

	careerMatched := p.CareerInterest != "" &&
		(overlapFold([]string{p.CareerInterest}, opp.Eligibility.CareerInterests) ||
			looseEqual(p.CareerInterest, opp.Name))
	careerOpen := p.CareerInterest == "" || len(opp.Eligibility.CareerInterests) == 0
	score += criterion(internCareerWeight, careerMatched, careerOpen)
	if careerMatched {
		reasons = append(reasons, "Experience in your career interest: "+p.CareerInterest)
	}

	required := opp.Eligibility.SkillsRequired
	if len(required) == 0 {
		required = opp.Requirements
	}
	skillsMatched := overlapFold(p.Skills, required)
	skillsOpen := len(p.Skills) == 0 || len(required) == 0
	score += criterion(internSkillsWeight, skillsMatched, skillsOpen)
	if skillsMatched {
		reasons = append(reasons, "You meet stated skill requirements")
	}

	fieldMatched := p.FieldOfStudy != "" &&
		overlapFold([]string{p.FieldOfStudy}, opp.Eligibility.FieldsOfStudy)
	fieldOpen := p.FieldOfStudy == "" || len(opp.Eligibility.FieldsOfStudy) == 0
	score += criterion(internFieldWeight, fieldMatched, fieldOpen)
	if fieldMatched {
		reasons = append(reasons, "Matches your field of study: "+p.FieldOfStudy)
	}

	locMatched, locOpen := locationFit(p, opp.Eligibility)
	if looseEqual(details.Format, "remote") ||
		(p.PreferredFormat != "" && looseEqual(details.Format, p.PreferredFormat)) {
		locMatched, locOpen = true, false
	}
	score += criterion(internLocationWeight, locMatched, locOpen)
	if locMatched {
		reasons = append(reasons, "Workable from your location")
	}

	if details.Stipend != "" {
		score += internStipendBonus
		reasons = append(reasons, "Offers a stipend: "+details.Stipend)
	}
	return score, reasons
}
