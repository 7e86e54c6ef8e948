package match

import "github.com/elimuhub/opportunity-finder/internal/models"

// Learning weight table: career interest 35, skills-gap coverage 35,
// format/availability 20, cost 10. Bonus: +3 when certification is offered.
const (
	learnCareerWeight = 35
	learnSkillsWeight = 35
	learnFormatWeight = 20
	learnCostWeight   = 10
	learnCertBonus    = 3
)

func scoreLearning(p models.Profile, opp models.Opportunity) (int, []string) {
	score := 0
	var reasons []string
	details := opp.LearningDetails
	if details == nil {
		details = &models.LearningDetails{}
	}

	taught := details.SkillsTaught
	if len(taught) == 0 {
		taught = opp.Eligibility.SkillsRequired
	}

	careerMatched := p.CareerInterest != "" &&
		(overlapFold([]string{p.CareerInterest}, opp.Eligibility.CareerInterests) ||
			overlapFold([]string{p.CareerInterest}, taught))
	careerOpen := p.CareerInterest == "" ||
		(len(opp.Eligibility.CareerInterests) == 0 && len(taught) == 0)
	score += criterion(learnCareerWeight, careerMatched, careerOpen)
	if careerMatched {
		reasons = append(reasons, "Relevant to your career interest in "+p.CareerInterest)
	}

	wanted := append(append([]string{}, p.SkillsWanted...), p.LearningGoals...)
	gapMatched := overlapFold(wanted, taught)
	gapOpen := len(wanted) == 0 || len(taught) == 0
	score += criterion(learnSkillsWeight, gapMatched, gapOpen)
	if gapMatched {
		reasons = append(reasons, "Covers skills you are looking to build")
	}

	formatMatched := (p.PreferredFormat != "" && looseEqual(details.Format, p.PreferredFormat)) ||
		(p.PreferredSchedule != "" && looseEqual(details.Availability, p.PreferredSchedule))
	formatOpen := (p.PreferredFormat == "" && p.PreferredSchedule == "") ||
		(details.Format == "" && details.Availability == "")
	score += criterion(learnFormatWeight, formatMatched, formatOpen)
	if formatMatched {
		reasons = append(reasons, "Format and availability suit your preferences")
	}

	costMatched := freeOfCharge(details.Cost)
	costOpen := details.Cost == ""
	score += criterion(learnCostWeight, costMatched, costOpen)
	if costMatched {
		reasons = append(reasons, "Free to access")
	}

	if details.CertificationOffered {
		score += learnCertBonus
		reasons = append(reasons, "Offers a certification on completion")
	}
	return score, reasons
}
