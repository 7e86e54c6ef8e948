package match

import (
	"math"
	"strings"
)

// partialCredit is the fraction of a criterion's weight awarded when the
// criterion is unspecified on either side. Sparsely described listings keep
// a fighting chance instead of being zeroed out.
const partialCredit = 0.6

// criterion scores one weighted sub-criterion. matched earns full weight,
// unspecified earns partial weight, a definite mismatch earns nothing.
func criterion(weight int, matched, unspecified bool) int {
	switch {
	case matched:
		return weight
	case unspecified:
		return partial(weight)
	default:
		return 0
	}
}

func partial(weight int) int {
	return int(math.Round(float64(weight) * partialCredit))
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

// overlapFold reports whether any member of a appears in b, matching
// case-insensitively on substring in either direction so "Software
// Engineering" meets "software".
func overlapFold(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if looseEqual(x, y) {
				return true
			}
		}
	}
	return false
}

func looseEqual(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func joinList(items []string) string {
	if len(items) <= 3 {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:3], ", ") + " and more"
}

func freeOfCharge(cost string) bool {
	c := strings.ToLower(cost)
	return strings.Contains(c, "free") || strings.Contains(c, "no cost") ||
		strings.Contains(c, "fully funded") || strings.Contains(c, "sponsored")
}
