package sources

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRunRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseAmountValue extracts a numeric value from a free-text amount string
// ("Ksh 50,000 per year", "up to KES 120,000"). It takes the first digit run
// and strips thousands separators. Unparsable text yields 0; the record
// itself is never dropped here.
func ParseAmountValue(text string) float64 {
	m := digitRunRegex.FindString(text)
	if m == "" {
		return 0
	}
	clean := strings.ReplaceAll(m, ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
