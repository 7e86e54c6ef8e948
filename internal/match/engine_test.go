package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

func TestChanceBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  models.Chance
	}{
		{0, models.ChanceLow},
		{39, models.ChanceLow},
		{40, models.ChanceMedium},
		{69, models.ChanceMedium},
		{70, models.ChanceHigh},
		{100, models.ChanceHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, chance(tt.score), "score %d", tt.score)
	}
}

func TestScoreBounds(t *testing.T) {
	engine := NewEngine()

	profiles := []models.Profile{
		{},
		{County: "Nairobi", Grade: 9, Curriculum: "CBC", CareerInterest: "Software Engineering",
			Skills: []string{"python", "communication"}, SkillsWanted: []string{"go"},
			FieldOfStudy: "Computer Science", ExamScore: 380, PreferredFormat: "online"},
	}
	opportunities := []models.Opportunity{
		{Name: "Bare Minimum Listing"},
		{Name: "Everything Scholarship", Type: models.TypeScholarship, Priority: 9,
			Eligibility: models.Eligibility{
				Counties: []string{"Nairobi"}, MinGrade: 1, MaxGrade: 12,
				Curriculum: []string{"CBC"}, MinExamScore: 200,
				CareerInterests: []string{"Software Engineering"},
				SkillsRequired:  []string{"python"}, FieldsOfStudy: []string{"Computer Science"},
			}},
		{Name: "Mismatch Bursary", Type: models.TypeBursary,
			Eligibility: models.Eligibility{Counties: []string{"Turkana"}, MinGrade: 11, Curriculum: []string{"IGCSE"}}},
		{Name: "Free Tech Bootcamp", Type: models.TypeBootcamp, BootcampDetails: &models.BootcampDetails{
			SkillsTaught: []string{"go", "python"}, Cost: "Free", Format: "online"}},
		{Name: "Mentor Circle", Type: models.TypeMentorship, MentorshipDetails: &models.MentorshipDetails{
			FocusAreas: []string{"Software Engineering"}, Format: "online"}},
		{Name: "Engineering Attachment", Type: models.TypeInternship, InternshipDetails: &models.InternshipDetails{
			Stipend: "KES 15,000", Format: "remote"}},
		{Name: "Online Learning Hub", Type: models.TypeLearning, LearningDetails: &models.LearningDetails{
			SkillsTaught: []string{"go"}, Cost: "free", CertificationOffered: true}},
	}

	for _, p := range profiles {
		for _, opp := range opportunities {
			m := engine.Score(p, opp)
			assert.GreaterOrEqual(t, m.Score, 0, "%s", opp.Name)
			assert.LessOrEqual(t, m.Score, 100, "%s", opp.Name)
			assert.Equal(t, chance(m.Score), m.EstimatedChance)
		}
	}
}

func TestScoreFullFitScenario(t *testing.T) {
	engine := NewEngine()
	profile := models.Profile{
		County:         "Nairobi",
		Curriculum:     "CBC",
		Grade:          9,
		CareerInterest: "Software Engineering",
	}
	opp := models.Opportunity{
		Name: "County Talent Scholarship",
		Type: models.TypeScholarship,
		Eligibility: models.Eligibility{
			Counties:   []string{"Nairobi"},
			MinGrade:   9,
			MaxGrade:   12,
			Curriculum: []string{"CBC"},
		},
	}

	m := engine.Score(profile, opp)
	assert.GreaterOrEqual(t, m.Score, 70, "full location, grade and curriculum credit lands in the high band")
	assert.Equal(t, models.ChanceHigh, m.EstimatedChance)

	joined := strings.ToLower(strings.Join(m.Reasons, " | "))
	assert.Contains(t, joined, "nairobi", "reasons name the location match")
	assert.Contains(t, joined, "grade 9", "reasons state grade suitability")
	assert.Contains(t, joined, "cbc")
}

func TestScoreMismatchedEducationIsLow(t *testing.T) {
	engine := NewEngine()
	profile := models.Profile{County: "Nairobi", Grade: 7, Curriculum: "CBC", ExamScore: 250,
		CareerInterest: "Medicine", Skills: []string{"biology"}, FieldOfStudy: "Medicine"}
	opp := models.Opportunity{
		Name: "Coastal IGCSE Scholarship",
		Type: models.TypeScholarship,
		Eligibility: models.Eligibility{
			Counties: []string{"Mombasa"}, MinGrade: 10, MaxGrade: 12,
			Curriculum: []string{"IGCSE"}, MinExamScore: 400,
			CareerInterests: []string{"Marine Biology"},
			SkillsRequired:  []string{"swimming"}, FieldsOfStudy: []string{"Oceanography"},
		},
	}

	m := engine.Score(profile, opp)
	assert.Zero(t, m.Score, "every criterion is specified on both sides and none matches")
	assert.Empty(t, m.Reasons)
}

func TestReasonsOnlyForMatchedCriteria(t *testing.T) {
	engine := NewEngine()
	profile := models.Profile{County: "Nairobi"}
	opp := models.Opportunity{
		Name:        "Open National Bursary",
		Type:        models.TypeBursary,
		Eligibility: models.Eligibility{Counties: []string{"Nairobi"}},
	}

	m := engine.Score(profile, opp)
	require.Len(t, m.Reasons, 1, "partial credit earns score but no reason")
	assert.Contains(t, m.Reasons[0], "Nairobi")
}

func TestBootcampScoring(t *testing.T) {
	engine := NewEngine()
	profile := models.Profile{
		CareerInterest:  "Software Engineering",
		SkillsWanted:    []string{"go"},
		PreferredFormat: "online",
	}
	opp := models.Opportunity{
		Name:        "Talanta Software Engineering Bootcamp",
		Type:        models.TypeBootcamp,
		Eligibility: models.Eligibility{CareerInterests: []string{"Software Engineering"}},
		BootcampDetails: &models.BootcampDetails{
			SkillsTaught: []string{"go", "react"},
			Cost:         "Free for selected applicants",
			Format:       "online",
		},
	}

	m := engine.Score(profile, opp)
	assert.Equal(t, models.ChanceHigh, m.EstimatedChance)

	joined := strings.Join(m.Reasons, " | ")
	assert.Contains(t, joined, "Free of charge")
	assert.Contains(t, joined, "preferred format")
}

func TestApplicationStepsFromOpportunityOnly(t *testing.T) {
	engine := NewEngine()
	opp := models.Opportunity{
		Name:                "Wings to Fly Scholarship",
		Type:                models.TypeScholarship,
		ApplicationLink:     "https://equity.example/apply",
		ApplicationDeadline: "2026-03-31",
		Documents:           []string{"ID copy", "KCPE certificate"},
	}

	a := engine.Score(models.Profile{}, opp)
	b := engine.Score(models.Profile{County: "Kisumu", Grade: 11}, opp)
	assert.Equal(t, a.ApplicationSteps, b.ApplicationSteps, "steps never depend on the profile")

	joined := strings.Join(a.ApplicationSteps, " | ")
	assert.Contains(t, joined, "ID copy")
	assert.Contains(t, joined, "https://equity.example/apply")
	assert.Contains(t, joined, "2026-03-31")
}

func TestApplicationStepsContactFallback(t *testing.T) {
	engine := NewEngine()
	opp := models.Opportunity{
		Name:        "Ward Bursary Fund",
		Type:        models.TypeBursary,
		ContactInfo: &models.ContactInfo{Email: "bursary@county.example"},
	}
	m := engine.Score(models.Profile{}, opp)
	assert.Contains(t, strings.Join(m.ApplicationSteps, " | "), "bursary@county.example")
}
