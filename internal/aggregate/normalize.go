package aggregate

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// minUsefulDescription is the length under which a description adds nothing
// a reader could act on; shorter ones are rebuilt from structured fields.
const minUsefulDescription = 40

var stripPolicy = bluemonday.StrictPolicy()

// knownCountries maps the upper-cased country tokens naive extraction tends
// to produce back to their display form.
var knownCountries = map[string]string{
	"KENYA": "Kenya", "UGANDA": "Uganda", "TANZANIA": "Tanzania",
	"RWANDA": "Rwanda", "ETHIOPIA": "Ethiopia", "NIGERIA": "Nigeria",
	"GHANA": "Ghana", "SOUTH AFRICA": "South Africa", "AFRICA": "Africa",
}

// Normalize repairs common extraction defects on raw records and discards
// anything without a usable name. It never drops a record for a malformed
// field; the field is cleaned or emptied instead.
func Normalize(records []models.Opportunity) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(records))
	for _, opp := range records {
		opp.Name = repairText(opp.Name)
		if !models.UsableName(opp.Name) {
			continue
		}
		opp.Provider = repairText(opp.Provider)
		opp.Description = repairText(stripPolicy.Sanitize(opp.Description))
		opp.Amount = collapseSpace(opp.Amount)
		opp.Duration = collapseSpace(opp.Duration)

		for i, c := range opp.Eligibility.Countries {
			if display, ok := knownCountries[strings.ToUpper(strings.TrimSpace(c))]; ok {
				opp.Eligibility.Countries[i] = display
			}
		}

		if len(opp.Description) < minUsefulDescription {
			opp.Description = synthesizeDescription(opp)
		}

		out = append(out, opp)
	}
	return out
}

// repairText collapses whitespace, removes consecutive duplicated tokens
// ("Kenya Kenya Scholarship") left behind by naive text extraction, and
// titlecases known all-caps country tokens.
func repairText(s string) string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(out) > 0 && strings.EqualFold(out[len(out)-1], w) {
			continue
		}
		if display, ok := knownCountries[strings.ToUpper(w)]; ok && w == strings.ToUpper(w) {
			w = display
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// synthesizeDescription builds a readable description from structured fields
// so a thin or empty extraction does not surface as a near-blank listing.
func synthesizeDescription(opp models.Opportunity) string {
	kind := string(opp.Type)
	if kind == "" {
		kind = "opportunity"
	}

	var b strings.Builder
	if opp.Provider != "" {
		fmt.Fprintf(&b, "%s offered by %s", titleWord(kind), opp.Provider)
	} else {
		fmt.Fprintf(&b, "%s listed by %s", titleWord(kind), opp.Source)
	}
	if len(opp.Eligibility.Counties) > 0 {
		fmt.Fprintf(&b, " for students in %s", strings.Join(opp.Eligibility.Counties, ", "))
	} else if len(opp.Eligibility.Countries) > 0 {
		fmt.Fprintf(&b, " open to applicants in %s", strings.Join(opp.Eligibility.Countries, ", "))
	}
	b.WriteString(".")
	if opp.Duration != "" {
		fmt.Fprintf(&b, " Duration: %s.", opp.Duration)
	}
	if opp.Amount != "" {
		fmt.Fprintf(&b, " Amount: %s.", opp.Amount)
	}
	if opp.ApplicationDeadline != "" {
		fmt.Fprintf(&b, " Application deadline: %s.", opp.ApplicationDeadline)
	}
	return b.String()
}
