package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

func filterFixtures() []models.Opportunity {
	return []models.Opportunity{
		{
			Name:        "Wings to Fly Scholarship",
			Provider:    "Equity Group Foundation",
			Description: "Secondary school scholarship for bright needy students.",
			Amount:      "KES 50,000 per year",
			Type:        models.TypeScholarship,
			Eligibility: models.Eligibility{Counties: []string{"Nairobi"}},
		},
		{
			Name:                "Commonwealth Shared Scholarship",
			Description:         "Masters degree funding in the United Kingdom.",
			Type:                models.TypeScholarship,
			ApplicationDeadline: "2026-01-15",
			Eligibility:         models.Eligibility{Countries: []string{"United Kingdom", "Canada"}},
		},
		{
			Name:                "Talanta Tech Bootcamp",
			Description:         "Software engineering training.",
			Amount:              "Free",
			Type:                models.TypeBootcamp,
			ApplicationDeadline: "2026-09-30",
		},
	}
}

func TestByQuery(t *testing.T) {
	out := Apply(filterFixtures(), ByQuery("equity"))
	assert.Len(t, out, 1)
	assert.Equal(t, "Wings to Fly Scholarship", out[0].Name)

	assert.Len(t, Apply(filterFixtures(), ByQuery("")), 3)
	assert.Empty(t, Apply(filterFixtures(), ByQuery("no such thing")))
}

func TestByQueryMatchesEligibleCountries(t *testing.T) {
	records := []models.Opportunity{{
		Name:        "Commonwealth Shared Award",
		Description: "Masters degree funding abroad.",
		Eligibility: models.Eligibility{Countries: []string{"Kenya", "Uganda"}},
	}}

	out := Apply(records, ByQuery("kenya"))
	assert.Len(t, out, 1, "a term found only in the country list still matches")

	assert.Empty(t, Apply(records, ByQuery("tanzania")))
}

func TestKenyanOnly(t *testing.T) {
	out := Apply(filterFixtures(), KenyanOnly())
	names := []string{out[0].Name, out[1].Name}
	assert.Len(t, out, 2)
	assert.NotContains(t, names, "Commonwealth Shared Scholarship",
		"an explicit foreign-only country list excludes the record")
}

func TestKenyanOnlyUniversalMarker(t *testing.T) {
	records := []models.Opportunity{{
		Name:        "Global Open Scholarship Fund",
		Eligibility: models.Eligibility{Countries: []string{"all"}},
	}}
	assert.Len(t, Apply(records, KenyanOnly()), 1)
}

func TestByCounty(t *testing.T) {
	assert.Len(t, Apply(filterFixtures(), ByCounty("Nairobi")), 3,
		"county-restricted match plus unrestricted records")
	out := Apply(filterFixtures(), ByCounty("Mombasa"))
	assert.Len(t, out, 2, "the Nairobi-only record is dropped")
}

func TestByMinAmount(t *testing.T) {
	assert.Empty(t, Apply(filterFixtures(), ByMinAmount(60000)),
		"below-threshold and unparsable amounts both fail")

	out := Apply(filterFixtures(), ByMinAmount(40000))
	assert.Len(t, out, 1)
	assert.Equal(t, "Wings to Fly Scholarship", out[0].Name)

	assert.Len(t, Apply(filterFixtures(), ByMinAmount(0)), 3)
}

func TestByType(t *testing.T) {
	out := Apply(filterFixtures(), ByType(models.TypeBootcamp))
	assert.Len(t, out, 1)
	assert.Len(t, Apply(filterFixtures(), ByType("")), 3)
}

func TestUpcomingOnly(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	out := Apply(filterFixtures(), UpcomingOnly(now))
	assert.Len(t, out, 1, "past deadlines and missing deadlines are both dropped")
	assert.Equal(t, "Talanta Tech Bootcamp", out[0].Name)
}
