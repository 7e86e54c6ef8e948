package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

// rowFields is the partial field set pulled from one listing row. Only Name
// is required; everything else is best effort.
type rowFields struct {
	Name     string
	Link     string
	Deadline string
	Amount   string
	Duration string
	Location string
	Summary  string
}

// containerStrategy pairs a label with a structural selector. Strategies are
// tried in order and the first one that yields at least one row wins, which
// keeps "try many shapes" behavior without any runtime type inspection.
type containerStrategy struct {
	name     string
	selector string
}

var defaultStrategies = []containerStrategy{
	{"table-rows", "table tr"},
	{"cards", ".card, .opportunity, .opportunity-card, article, li.listing, .entry"},
	{"tagged", "[class*=scholarship], [id*=scholarship], [class*=bursary], [class*=opportunity]"},
}

// selectRows returns the rows of the first strategy that matches anything.
// Configured selectors from the registry are tried before the built-ins.
func selectRows(doc *goquery.Document, configured []string) (*goquery.Selection, string) {
	for _, sel := range configured {
		if sel == "" {
			continue
		}
		rows := doc.Find(sel)
		if rows.Length() > 0 {
			return rows, sel
		}
	}
	for _, s := range defaultStrategies {
		rows := doc.Find(s.selector)
		if rows.Length() > 0 {
			return rows, s.name
		}
	}
	return nil, ""
}

// extractRow runs both the cell-position and the label-proximity extraction
// over one row and keeps whichever produced a non-empty value per field.
func extractRow(sel *goquery.Selection, cfg SelectorConfig) rowFields {
	byCell := extractByCells(sel)
	byLabel := extractByLabels(sel)

	f := rowFields{
		Name:     firstNonEmpty(configuredText(sel, cfg.Name), byCell.Name, byLabel.Name),
		Link:     firstNonEmpty(configuredAttr(sel, cfg.Link, "href"), byCell.Link, byLabel.Link),
		Deadline: firstNonEmpty(configuredText(sel, cfg.Deadline), byLabel.Deadline, byCell.Deadline),
		Amount:   firstNonEmpty(configuredText(sel, cfg.Amount), byLabel.Amount, byCell.Amount),
		Duration: firstNonEmpty(configuredText(sel, cfg.Duration), byLabel.Duration, byCell.Duration),
		Location: firstNonEmpty(configuredText(sel, cfg.Location), byLabel.Location, byCell.Location),
		Summary:  firstNonEmpty(configuredText(sel, cfg.Summary), byLabel.Summary),
	}
	return f
}

func configuredText(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return cleanText(sel.Find(selector).First().Text())
}

func configuredAttr(sel *goquery.Selection, selector, attr string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(sel.Find(selector).First().AttrOr(attr, ""))
}

// extractByCells treats the row as a table row: the name sits in the first
// substantial cell and the rest is classified by content shape.
func extractByCells(sel *goquery.Selection) rowFields {
	var f rowFields
	cells := sel.Find("td")
	if cells.Length() == 0 {
		// Card-like rows: heading text is the name, anchor is the link.
		f.Name = cleanText(sel.Find("h1, h2, h3, h4, .title").First().Text())
		if f.Name == "" {
			f.Name = cleanText(sel.Find("a").First().Text())
		}
		f.Link = strings.TrimSpace(sel.Find("a").First().AttrOr("href", ""))
		f.Summary = cleanText(sel.Find("p").First().Text())
		return f
	}

	cells.Each(func(i int, cell *goquery.Selection) {
		text := cleanText(cell.Text())
		if text == "" {
			return
		}
		switch {
		case f.Name == "":
			f.Name = text
		case f.Deadline == "" && looksLikeDate(text):
			f.Deadline = text
		case f.Amount == "" && looksLikeAmount(text):
			f.Amount = text
		case f.Duration == "" && looksLikeDuration(text):
			f.Duration = text
		case f.Location == "" && looksLikeLocation(text):
			f.Location = text
		}
	})
	f.Link = strings.TrimSpace(sel.Find("a").First().AttrOr("href", ""))
	return f
}

var fieldLabels = map[string]string{
	"deadline":     "deadline",
	"closing date": "deadline",
	"apply by":     "deadline",
	"amount":       "amount",
	"award":        "amount",
	"value":        "amount",
	"duration":     "duration",
	"period":       "duration",
	"location":     "location",
	"county":       "location",
	"where":        "location",
	"about":        "summary",
	"description":  "summary",
	"details":      "summary",
}

// extractByLabels walks labeled elements ("Deadline: 31 March 2026") and
// assigns the trailing text to the labeled field.
func extractByLabels(sel *goquery.Selection) rowFields {
	var f rowFields

	f.Name = cleanText(sel.Find("h1, h2, h3, h4, .title, .name").First().Text())
	f.Link = strings.TrimSpace(sel.Find("a").First().AttrOr("href", ""))

	sel.Find("li, p, div, span, dt, strong, b").Each(func(i int, el *goquery.Selection) {
		text := cleanText(el.Text())
		if text == "" || len(text) > 300 {
			return
		}
		lower := strings.ToLower(text)
		for label, field := range fieldLabels {
			if !strings.HasPrefix(lower, label) {
				continue
			}
			value := strings.TrimSpace(strings.TrimLeft(text[len(label):], " :-–"))
			if value == "" {
				// Label element with the value in the next sibling (dt/dd pairs).
				value = cleanText(el.Next().Text())
			}
			if value == "" {
				continue
			}
			switch field {
			case "deadline":
				if f.Deadline == "" {
					f.Deadline = value
				}
			case "amount":
				if f.Amount == "" {
					f.Amount = value
				}
			case "duration":
				if f.Duration == "" {
					f.Duration = value
				}
			case "location":
				if f.Location == "" {
					f.Location = value
				}
			case "summary":
				if f.Summary == "" {
					f.Summary = value
				}
			}
			return
		}
	})
	return f
}

func looksLikeDate(s string) bool {
	_, ok := ParseDeadline(s)
	return ok
}

func looksLikeAmount(s string) bool {
	lower := strings.ToLower(s)
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	return strings.Contains(lower, "ksh") || strings.Contains(lower, "kes") ||
		strings.Contains(lower, "sh.") || strings.Contains(s, "$") ||
		strings.Contains(lower, "usd") || strings.Contains(lower, "/=")
}

func looksLikeDuration(s string) bool {
	lower := strings.ToLower(s)
	for _, unit := range []string{"year", "month", "week", "term", "semester"} {
		if strings.Contains(lower, unit) {
			return true
		}
	}
	return false
}

func looksLikeLocation(s string) bool {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "county") || strings.Contains(lower, "kenya") || strings.Contains(lower, "nationwide") {
		return true
	}
	for _, c := range KenyanCounties {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}

// inferType classifies a listing from its own wording when the source has no
// explicit type column. Order matters: "internship" and "bootcamp" phrasing
// is more specific than the catch-all scholarship vocabulary.
func inferType(text string, fallback models.Type) models.Type {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "internship") || strings.Contains(lower, "attachment"):
		return models.TypeInternship
	case strings.Contains(lower, "bootcamp") || strings.Contains(lower, "boot camp"):
		return models.TypeBootcamp
	case strings.Contains(lower, "mentorship") || strings.Contains(lower, "mentor"):
		return models.TypeMentorship
	case strings.Contains(lower, "course") || strings.Contains(lower, "training") ||
		strings.Contains(lower, "learning") || strings.Contains(lower, "certificate program"):
		return models.TypeLearning
	case strings.Contains(lower, "grant"):
		return models.TypeGrant
	case strings.Contains(lower, "loan"):
		return models.TypeLoan
	case strings.Contains(lower, "bursary") || strings.Contains(lower, "bursaries"):
		return models.TypeBursary
	case strings.Contains(lower, "scholarship"):
		return models.TypeScholarship
	}
	if fallback != "" {
		return fallback
	}
	return models.TypeScholarship
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
