package match

import (
	"fmt"
	"strings"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// Education weight table: location 20, academic fit 35 (grade 15,
// curriculum 12, exam score 8), career interest 20, skills 15, field of
// study 10. High-priority listings earn a +5 bonus.
const (
	eduLocationWeight   = 20
	eduGradeWeight      = 15
	eduCurriculumWeight = 12
	eduExamWeight       = 8
	eduCareerWeight     = 20
	eduSkillsWeight     = 15
	eduFieldWeight      = 10
	eduPriorityBonus    = 5
)

// scoreEducation covers scholarship, bursary, loan, grant and any untyped
// record.
func scoreEducation(p models.Profile, opp models.Opportunity) (int, []string) {
	score := 0
	var reasons []string
	el := opp.Eligibility

	// Location.
	locMatched, locOpen := locationFit(p, el)
	score += criterion(eduLocationWeight, locMatched, locOpen)
	if locMatched {
		where := p.County
		if where == "" {
			where = p.Constituency
		}
		reasons = append(reasons, fmt.Sprintf("Available in your area (%s)", where))
	}

	// Grade range.
	gradeMatched := p.Grade > 0 && el.MinGrade > 0 &&
		p.Grade >= el.MinGrade && (el.MaxGrade == 0 || p.Grade <= el.MaxGrade)
	gradeOpen := p.Grade == 0 || el.MinGrade == 0
	score += criterion(eduGradeWeight, gradeMatched, gradeOpen)
	if gradeMatched {
		if el.MaxGrade > 0 {
			reasons = append(reasons, fmt.Sprintf("Suitable for grade %d (accepts grades %d-%d)",
				p.Grade, el.MinGrade, el.MaxGrade))
		} else {
			reasons = append(reasons, fmt.Sprintf("Suitable for grade %d (accepts grade %d and above)",
				p.Grade, el.MinGrade))
		}
	}

	// Curriculum.
	currMatched := p.Curriculum != "" && containsFold(el.Curriculum, p.Curriculum)
	currOpen := p.Curriculum == "" || len(el.Curriculum) == 0
	score += criterion(eduCurriculumWeight, currMatched, currOpen)
	if currMatched {
		reasons = append(reasons, "Curriculum match: "+strings.ToUpper(p.Curriculum))
	}

	// Exam score threshold.
	examMatched := p.ExamScore > 0 && el.MinExamScore > 0 && p.ExamScore >= el.MinExamScore
	examOpen := p.ExamScore == 0 || el.MinExamScore == 0
	score += criterion(eduExamWeight, examMatched, examOpen)
	if examMatched {
		reasons = append(reasons, fmt.Sprintf("Your exam score %d meets the minimum of %d",
			p.ExamScore, el.MinExamScore))
	}

	// Career interest.
	careerMatched := p.CareerInterest != "" &&
		overlapFold([]string{p.CareerInterest}, el.CareerInterests)
	careerOpen := p.CareerInterest == "" || len(el.CareerInterests) == 0
	score += criterion(eduCareerWeight, careerMatched, careerOpen)
	if careerMatched {
		reasons = append(reasons, "Aligned with your career interest in "+p.CareerInterest)
	}

	// Skills.
	skillsMatched := overlapFold(p.Skills, el.SkillsRequired)
	skillsOpen := len(p.Skills) == 0 || len(el.SkillsRequired) == 0
	score += criterion(eduSkillsWeight, skillsMatched, skillsOpen)
	if skillsMatched {
		reasons = append(reasons, "You have skills this opportunity asks for")
	}

	// Field of study.
	fieldMatched := p.FieldOfStudy != "" &&
		overlapFold([]string{p.FieldOfStudy}, el.FieldsOfStudy)
	fieldOpen := p.FieldOfStudy == "" || len(el.FieldsOfStudy) == 0
	score += criterion(eduFieldWeight, fieldMatched, fieldOpen)
	if fieldMatched {
		reasons = append(reasons, "Covers your field of study: "+p.FieldOfStudy)
	}

	if opp.Priority >= highPriorityFloor {
		score += eduPriorityBonus
	}
	return score, reasons
}

// locationFit checks county then constituency eligibility. A record with no
// geographic restriction, or a profile with no location, counts as
// unspecified rather than a mismatch. The universal "all" country marker
// keeps a record open everywhere.
func locationFit(p models.Profile, el models.Eligibility) (matched, unspecified bool) {
	restricted := len(el.Counties) > 0 || len(el.Constituencies) > 0
	if !restricted {
		if containsFold(el.Countries, "all") || containsFold(el.Countries, "kenya") {
			return p.County != "" || p.Constituency != "", true
		}
		return false, true
	}
	if p.County == "" && p.Constituency == "" {
		return false, true
	}
	if p.County != "" && containsFold(el.Counties, p.County) {
		return true, false
	}
	if p.Constituency != "" && containsFold(el.Constituencies, p.Constituency) {
		return true, false
	}
	return false, false
}
