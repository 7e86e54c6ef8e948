package match

import (
	"fmt"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// Bootcamp weight table: career interest 40, taught skills vs wanted
// skills/learning goals 30, location 15, schedule 10, experience level 5.
// Bonuses: +5 free of charge, +3 format preference met.
const (
	bootCareerWeight     = 40
	bootSkillsWeight     = 30
	bootLocationWeight   = 15
	bootScheduleWeight   = 10
	bootExperienceWeight = 5
	bootFreeBonus        = 5
	bootFormatBonus      = 3
)

func scoreBootcamp(p models.Profile, opp models.Opportunity) (int, []string) {
	score := 0
	var reasons []string
	details := opp.BootcampDetails
	if details == nil {
		details = &models.BootcampDetails{}
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
	score += criterion(bootCareerWeight, careerMatched, careerOpen)
	if careerMatched {
		reasons = append(reasons, "Trains toward your career interest in "+p.CareerInterest)
	}

	wanted := append(append([]string{}, p.SkillsWanted...), p.LearningGoals...)
	skillsMatched := overlapFold(wanted, taught)
	skillsOpen := len(wanted) == 0 || len(taught) == 0
	score += criterion(bootSkillsWeight, skillsMatched, skillsOpen)
	if skillsMatched {
		reasons = append(reasons, "Teaches skills you want to learn")
	}

	locMatched, locOpen := locationFit(p, opp.Eligibility)
	if details.Format != "" && looseEqual(details.Format, "online") {
		// Online delivery makes location moot.
		locMatched, locOpen = true, false
	}
	score += criterion(bootLocationWeight, locMatched, locOpen)
	if locMatched {
		reasons = append(reasons, "Accessible from your location")
	}

	schedMatched := p.PreferredSchedule != "" && looseEqual(details.Schedule, p.PreferredSchedule)
	schedOpen := p.PreferredSchedule == "" || details.Schedule == ""
	score += criterion(bootScheduleWeight, schedMatched, schedOpen)
	if schedMatched {
		reasons = append(reasons, "Schedule fits your preference: "+details.Schedule)
	}

	expMatched := looseEqual(details.ExperienceLevel, "beginner") ||
		looseEqual(details.ExperienceLevel, "any") ||
		overlapFold(p.Skills, []string{details.ExperienceLevel})
	expOpen := details.ExperienceLevel == ""
	score += criterion(bootExperienceWeight, expMatched, expOpen)

	if freeOfCharge(details.Cost) {
		score += bootFreeBonus
		reasons = append(reasons, "Free of charge")
	}
	if p.PreferredFormat != "" && looseEqual(details.Format, p.PreferredFormat) {
		score += bootFormatBonus
		reasons = append(reasons, fmt.Sprintf("Offered in your preferred format (%s)", details.Format))
	}
	return score, reasons
}
