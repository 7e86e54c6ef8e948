package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

func TestNormalizeDropsUnusableNames(t *testing.T) {
	records := []models.Opportunity{
		{Name: ""},
		{Name: "HB"},
		{Name: "SCHOLARSHIP NAME"},
		{Name: "Valid Bursary Programme", Description: "A long enough description to survive the threshold."},
	}
	out := Normalize(records)
	require.Len(t, out, 1)
	assert.Equal(t, "Valid Bursary Programme", out[0].Name)
}

func TestNormalizeRepairsDuplicatedTokens(t *testing.T) {
	out := Normalize([]models.Opportunity{{
		Name:        "Kenya Kenya Education Fund Scholarship",
		Description: "Supports Supports needy students students across the country every year.",
	}})
	require.Len(t, out, 1)
	assert.Equal(t, "Kenya Education Fund Scholarship", out[0].Name)
	assert.Equal(t, "Supports needy students across the country every year.", out[0].Description)
}

func TestNormalizeTitlecasesCountryTokens(t *testing.T) {
	out := Normalize([]models.Opportunity{{
		Name:        "KENYA Undergraduate Scholarship Award",
		Description: "Open to undergraduate students in public universities countrywide.",
		Eligibility: models.Eligibility{Countries: []string{"KENYA", "uganda"}},
	}})
	require.Len(t, out, 1)
	assert.Equal(t, "Kenya Undergraduate Scholarship Award", out[0].Name)
	assert.Equal(t, []string{"Kenya", "Uganda"}, out[0].Eligibility.Countries)
}

func TestNormalizeStripsMarkup(t *testing.T) {
	out := Normalize([]models.Opportunity{{
		Name:        "Constituency Development Fund Bursary",
		Description: "<p>Supports students from <b>low income</b> households.</p><script>alert(1)</script>",
	}})
	require.Len(t, out, 1)
	assert.NotContains(t, out[0].Description, "<")
	assert.NotContains(t, out[0].Description, "alert")
	assert.Contains(t, out[0].Description, "low income")
}

func TestNormalizeSynthesizesThinDescriptions(t *testing.T) {
	out := Normalize([]models.Opportunity{{
		Name:                "Talanta Tech Bootcamp Programme",
		Provider:            "Talanta Institute",
		Type:                models.TypeBootcamp,
		Description:         "Apply now",
		Amount:              "Free",
		Duration:            "12 weeks",
		ApplicationDeadline: "2026-05-01",
		Eligibility:         models.Eligibility{Counties: []string{"Nairobi"}},
	}})
	require.Len(t, out, 1)

	desc := out[0].Description
	assert.GreaterOrEqual(t, len(desc), minUsefulDescription)
	assert.Contains(t, desc, "Talanta Institute")
	assert.Contains(t, desc, "Nairobi")
	assert.Contains(t, desc, "12 weeks")
	assert.Contains(t, desc, "2026-05-01")
}

func TestNormalizeKeepsRichDescriptions(t *testing.T) {
	rich := "A fully funded scholarship covering tuition, accommodation and upkeep for four years."
	out := Normalize([]models.Opportunity{{Name: "Generous Scholarship Fund", Description: rich}})
	require.Len(t, out, 1)
	assert.Equal(t, rich, out[0].Description)
}
