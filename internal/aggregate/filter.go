package aggregate

import (
	"strings"
	"time"

	"github.com/elimuhub/opportunity-finder/internal/models"
	"github.com/elimuhub/opportunity-finder/internal/sources"
)

// Filter narrows an opportunity list. Filters compose with Apply and never
// mutate their input.
type Filter func(models.Opportunity) bool

// Apply keeps the records every filter accepts.
func Apply(records []models.Opportunity, filters ...Filter) []models.Opportunity {
	if len(filters) == 0 {
		return records
	}
	out := make([]models.Opportunity, 0, len(records))
outer:
	for _, opp := range records {
		for _, f := range filters {
			if !f(opp) {
				continue outer
			}
		}
		out = append(out, opp)
	}
	return out
}

// ByType keeps records of the given type. An empty type keeps everything.
func ByType(t models.Type) Filter {
	return func(opp models.Opportunity) bool {
		return t == "" || opp.Type == t
	}
}

// ByQuery matches a case-insensitive substring against name, provider,
// description and the eligible-country list.
func ByQuery(q string) Filter {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(opp models.Opportunity) bool {
		if q == "" {
			return true
		}
		if strings.Contains(strings.ToLower(opp.Name), q) ||
			strings.Contains(strings.ToLower(opp.Provider), q) ||
			strings.Contains(strings.ToLower(opp.Description), q) {
			return true
		}
		for _, country := range opp.Eligibility.Countries {
			if strings.Contains(strings.ToLower(country), q) {
				return true
			}
		}
		return false
	}
}

// KenyanOnly keeps records open to applicants in Kenya. A record with no
// geographic eligibility at all is treated as open.
func KenyanOnly() Filter {
	return func(opp models.Opportunity) bool {
		e := opp.Eligibility
		if len(e.Countries) == 0 && len(e.Counties) == 0 && len(e.Constituencies) == 0 {
			return true
		}
		if len(e.Counties) > 0 || len(e.Constituencies) > 0 {
			return true
		}
		for _, c := range e.Countries {
			lc := strings.ToLower(c)
			if lc == "kenya" || lc == "all" || lc == "africa" {
				return true
			}
		}
		return false
	}
}

// ByCounty keeps records eligible in the given county. Nationwide records,
// and records with no county restriction, pass.
func ByCounty(county string) Filter {
	county = strings.TrimSpace(county)
	return func(opp models.Opportunity) bool {
		if county == "" || len(opp.Eligibility.Counties) == 0 {
			return true
		}
		for _, c := range opp.Eligibility.Counties {
			if strings.EqualFold(c, county) {
				return true
			}
		}
		return false
	}
}

// ByMinAmount keeps records whose parsed amount meets the floor. Unparsable
// amounts read as 0 and fail the filter.
func ByMinAmount(min float64) Filter {
	return func(opp models.Opportunity) bool {
		if min <= 0 {
			return true
		}
		return sources.ParseAmountValue(opp.Amount) >= min
	}
}

// UpcomingOnly keeps only records with a valid deadline that has not passed.
// Records without a deadline are dropped by this filter specifically; they
// survive every other filter.
func UpcomingOnly(now time.Time) Filter {
	return func(opp models.Opportunity) bool {
		if opp.ApplicationDeadline == "" {
			return false
		}
		deadline, err := time.Parse(sources.ISODate, opp.ApplicationDeadline)
		if err != nil {
			return false
		}
		return !deadline.Before(now.Truncate(24 * time.Hour))
	}
}
