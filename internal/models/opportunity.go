package models

import "strings"

// Type classifies an opportunity. Scoring dispatches on this.
type Type string

const (
	TypeScholarship Type = "scholarship"
	TypeBursary     Type = "bursary"
	TypeLoan        Type = "loan"
	TypeGrant       Type = "grant"
	TypeBootcamp    Type = "bootcamp"
	TypeLearning    Type = "learning"
	TypeMentorship  Type = "mentorship"
	TypeInternship  Type = "internship"
)

// Eligibility captures the structured constraints a source publishes
// alongside a listing. Empty fields mean "unspecified", never "excluded".
type Eligibility struct {
	Counties          []string `json:"counties,omitempty"`
	Constituencies    []string `json:"constituencies,omitempty"`
	Countries         []string `json:"countries,omitempty"` // may contain the universal "all" marker
	MinGrade          int      `json:"min_grade,omitempty"`
	MaxGrade          int      `json:"max_grade,omitempty"`
	Curriculum        []string `json:"curriculum,omitempty"` // CBC, 8-4-4, IGCSE
	MinExamScore      int      `json:"min_exam_score,omitempty"`
	IncomeLevel       string   `json:"income_level,omitempty"`
	SpecialConditions []string `json:"special_conditions,omitempty"` // orphan, single-parent, disability
	FieldsOfStudy     []string `json:"fields_of_study,omitempty"`
	CareerInterests   []string `json:"career_interests,omitempty"`
	SkillsRequired    []string `json:"skills_required,omitempty"`
	ExperienceLevel   string   `json:"experience_level,omitempty"`
}

type BootcampDetails struct {
	SkillsTaught         []string `json:"skills_taught,omitempty"`
	Cost                 string   `json:"cost,omitempty"`
	Format               string   `json:"format,omitempty"` // online, in-person, hybrid
	Schedule             string   `json:"schedule,omitempty"`
	ExperienceLevel      string   `json:"experience_level,omitempty"`
	CertificationOffered bool     `json:"certification_offered,omitempty"`
}

type LearningDetails struct {
	SkillsTaught         []string `json:"skills_taught,omitempty"`
	Format               string   `json:"format,omitempty"`
	Availability         string   `json:"availability,omitempty"`
	Cost                 string   `json:"cost,omitempty"`
	CertificationOffered bool     `json:"certification_offered,omitempty"`
}

type MentorshipDetails struct {
	FocusAreas       []string `json:"focus_areas,omitempty"`
	Format           string   `json:"format,omitempty"`
	MeetingFrequency string   `json:"meeting_frequency,omitempty"`
}

type InternshipDetails struct {
	Stipend string `json:"stipend,omitempty"`
	Format  string `json:"format,omitempty"`
}

type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Opportunity is one listed scholarship, bursary, grant, bootcamp, learning
// program, mentorship or internship, as assembled from a single source.
// Records are rebuilt on every aggregation run; there is no identity that
// survives across runs at this layer.
type Opportunity struct {
	Name                string             `json:"name"`
	Provider            string             `json:"provider,omitempty"`
	Type                Type               `json:"type,omitempty"`
	Description         string             `json:"description,omitempty"`
	Amount              string             `json:"amount,omitempty"` // free text, parsed only for filtering
	Duration            string             `json:"duration,omitempty"`
	ApplicationDeadline string             `json:"application_deadline,omitempty"` // ISO-8601 date or empty
	ApplicationLink     string             `json:"application_link,omitempty"`
	Eligibility         Eligibility        `json:"eligibility,omitempty"`
	BootcampDetails     *BootcampDetails   `json:"bootcamp_details,omitempty"`
	LearningDetails     *LearningDetails   `json:"learning_details,omitempty"`
	MentorshipDetails   *MentorshipDetails `json:"mentorship_details,omitempty"`
	InternshipDetails   *InternshipDetails `json:"internship_details,omitempty"`
	ContactInfo         *ContactInfo       `json:"contact_info,omitempty"`
	Requirements        []string           `json:"requirements,omitempty"`
	Documents           []string           `json:"documents,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	Priority            int                `json:"priority,omitempty"` // higher = more prominent
	Source              string             `json:"source,omitempty"`   // adapter that produced the record
}

// Profile holds the requester attributes the scoring engine consumes.
// Any field may be zero; absent fields earn partial credit, never errors.
type Profile struct {
	County            string   `json:"county,omitempty"`
	Constituency      string   `json:"constituency,omitempty"`
	Grade             int      `json:"grade,omitempty"`
	Curriculum        string   `json:"curriculum,omitempty"`
	ExamScore         int      `json:"exam_score,omitempty"`
	CareerInterest    string   `json:"career_interest,omitempty"`
	FieldOfStudy      string   `json:"field_of_study,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	SkillsWanted      []string `json:"skills_wanted,omitempty"`
	LearningGoals     []string `json:"learning_goals,omitempty"`
	PreferredSchedule string   `json:"preferred_schedule,omitempty"`
	PreferredFormat   string   `json:"preferred_format,omitempty"`
	SpecialConditions []string `json:"special_conditions,omitempty"`
	IncomeLevel       string   `json:"income_level,omitempty"`
}

// Chance is the coarse success-likelihood bucket derived from a match score.
type Chance string

const (
	ChanceHigh   Chance = "high"
	ChanceMedium Chance = "medium"
	ChanceLow    Chance = "low"
)

// Match is the result of scoring one opportunity against one profile.
// Matches are ephemeral; they are computed per request and never stored.
type Match struct {
	Opportunity      Opportunity  `json:"opportunity"`
	Score            int          `json:"score"`
	Reasons          []string     `json:"reasons"`
	ApplicationSteps []string     `json:"application_steps"`
	EstimatedChance  Chance       `json:"estimated_chance"`
	Explanation      *Explanation `json:"explanation,omitempty"`
}

// Explanation is the optional LLM commentary attached to a Match after
// ranking. Its absence never changes the underlying match.
type Explanation struct {
	Text               string   `json:"text"`
	RecommendationTier string   `json:"recommendation_tier,omitempty"`
	Suggestions        []string `json:"suggestions,omitempty"`
}

var headerWords = []string{
	"SCHOLARSHIP NAME", "OPPORTUNITY", "BURSARY NAME", "PROGRAMME NAME",
	"NAME", "TITLE", "DEADLINE", "APPLY", "AMOUNT", "DETAILS", "S/NO",
}

// UsableName reports whether an extracted name is worth keeping. Very short
// strings and all-caps header rows ("SCHOLARSHIP NAME", "DEADLINE") are
// extraction artifacts, not listings.
func UsableName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return false
	}
	if name != strings.ToUpper(name) {
		return true
	}
	for _, h := range headerWords {
		if name == h {
			return false
		}
	}
	return len(strings.Fields(name)) > 2
}
