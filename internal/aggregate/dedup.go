package aggregate

import (
	"sort"
	"strings"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// Deduplicate merges records that describe the same listing and returns the
// merged set together with the number of duplicates folded away. Two records
// are the same listing when they share an application link, or failing that a
// name prefix. The merge is commutative, so the result does not depend on the
// order sources finished in.
func Deduplicate(records []models.Opportunity) ([]models.Opportunity, int) {
	byKey := make(map[string]models.Opportunity, len(records))
	duplicates := 0
	for _, opp := range records {
		key := dedupKey(opp)
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = opp
			continue
		}
		duplicates++
		byKey[key] = mergeRecords(existing, opp)
	}

	merged := make([]models.Opportunity, 0, len(byKey))
	for _, opp := range byKey {
		merged = append(merged, opp)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Priority != merged[j].Priority {
			return merged[i].Priority > merged[j].Priority
		}
		if merged[i].Name != merged[j].Name {
			return merged[i].Name < merged[j].Name
		}
		return merged[i].Source < merged[j].Source
	})
	return merged, duplicates
}

func dedupKey(opp models.Opportunity) string {
	if link := strings.ToLower(strings.TrimSpace(opp.ApplicationLink)); link != "" {
		return "link|" + link
	}
	name := strings.ToLower(opp.Name)
	if len(name) > 100 {
		name = name[:100]
	}
	return "name|" + name
}

// mergeRecords folds two records for the same listing into one. Field
// selection is symmetric in its arguments: the fuller value wins, ties break
// lexicographically.
func mergeRecords(a, b models.Opportunity) models.Opportunity {
	out := a
	out.Name = mergeField(a.Name, b.Name)
	out.Provider = mergeField(a.Provider, b.Provider)
	out.Description = mergeField(a.Description, b.Description)
	out.Amount = mergeField(a.Amount, b.Amount)
	out.Duration = mergeField(a.Duration, b.Duration)
	out.ApplicationDeadline = mergeField(a.ApplicationDeadline, b.ApplicationDeadline)
	out.ApplicationLink = mergeField(a.ApplicationLink, b.ApplicationLink)
	out.Notes = mergeField(a.Notes, b.Notes)
	out.Source = mergeField(a.Source, b.Source)
	if b.Priority > out.Priority {
		out.Priority = b.Priority
	}
	if out.Type == "" {
		out.Type = b.Type
	}

	out.Eligibility.Counties = mergeLists(a.Eligibility.Counties, b.Eligibility.Counties)
	out.Eligibility.Constituencies = mergeLists(a.Eligibility.Constituencies, b.Eligibility.Constituencies)
	out.Eligibility.Countries = mergeLists(a.Eligibility.Countries, b.Eligibility.Countries)
	out.Eligibility.Curriculum = mergeLists(a.Eligibility.Curriculum, b.Eligibility.Curriculum)
	out.Eligibility.SpecialConditions = mergeLists(a.Eligibility.SpecialConditions, b.Eligibility.SpecialConditions)
	out.Eligibility.FieldsOfStudy = mergeLists(a.Eligibility.FieldsOfStudy, b.Eligibility.FieldsOfStudy)
	out.Eligibility.CareerInterests = mergeLists(a.Eligibility.CareerInterests, b.Eligibility.CareerInterests)
	out.Eligibility.SkillsRequired = mergeLists(a.Eligibility.SkillsRequired, b.Eligibility.SkillsRequired)
	out.Requirements = mergeLists(a.Requirements, b.Requirements)
	out.Documents = mergeLists(a.Documents, b.Documents)

	if out.Eligibility.MinGrade == 0 {
		out.Eligibility.MinGrade = b.Eligibility.MinGrade
	}
	if out.Eligibility.MaxGrade == 0 {
		out.Eligibility.MaxGrade = b.Eligibility.MaxGrade
	}
	if out.Eligibility.IncomeLevel == "" {
		out.Eligibility.IncomeLevel = b.Eligibility.IncomeLevel
	}
	if out.Eligibility.ExperienceLevel == "" {
		out.Eligibility.ExperienceLevel = b.Eligibility.ExperienceLevel
	}
	if out.Eligibility.MinExamScore == 0 {
		out.Eligibility.MinExamScore = b.Eligibility.MinExamScore
	}

	if out.BootcampDetails == nil {
		out.BootcampDetails = b.BootcampDetails
	}
	if out.LearningDetails == nil {
		out.LearningDetails = b.LearningDetails
	}
	if out.MentorshipDetails == nil {
		out.MentorshipDetails = b.MentorshipDetails
	}
	if out.InternshipDetails == nil {
		out.InternshipDetails = b.InternshipDetails
	}
	if out.ContactInfo == nil {
		out.ContactInfo = b.ContactInfo
	}
	return out
}

func mergeField(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case len(a) != len(b):
		if len(a) > len(b) {
			return a
		}
		return b
	case a <= b:
		return a
	default:
		return b
	}
}

func mergeLists(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := mergeUniqueFold(a, b)
	sort.Strings(merged)
	return merged
}

// mergeUniqueFold appends the members of b missing from a, case-insensitively.
func mergeUniqueFold(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, lst := range [][]string{a, b} {
		for _, v := range lst {
			k := strings.ToLower(strings.TrimSpace(v))
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
