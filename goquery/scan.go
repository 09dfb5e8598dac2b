// Package goquery provides DOM-based extraction strategies that scan a
// page's HTML for listing-shaped regions using CSS selector heuristics.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/extract"
)

// rentalKeywords are tokens that mark a text region as rental-related.
// A region must carry at least two of them plus one data signal (price,
// beds, baths, or square footage) to be worth field extraction.
var rentalKeywords = []string{
	"rent", "lease", "available", "property", "apartment", "condo",
	"house", "townhouse", "studio", "bedroom", "bathroom", "sq ft",
	"monthly", "deposit", "move-in", "furnished", "unfurnished",
}

var dataSignalRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s*(?:bedrooms?|beds?|br)\b`),
	regexp.MustCompile(`(?i)\d+\s*(?:bathrooms?|baths?|ba)\b`),
	regexp.MustCompile(`(?i)\d+\s*sq\.?\s*ft`),
}

// isRentalContent gates DOM regions before field extraction.
func isRentalContent(text string) bool {
	if len(text) < 50 {
		return false
	}

	lower := strings.ToLower(text)
	keywords := 0
	for _, kw := range rentalKeywords {
		if strings.Contains(lower, kw) {
			keywords++
		}
	}
	if keywords < 2 {
		return false
	}

	if strings.Contains(text, "$") {
		return true
	}
	for _, re := range dataSignalRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// regionText returns the textual content of a selection, going through
// the converter when one is configured so line structure survives.
func regionText(sel *goquery.Selection, conv rentsync.Converter) string {
	if conv != nil {
		if html, err := goquery.OuterHtml(sel); err == nil {
			if text, err := conv.Convert(html); err == nil {
				return text
			}
		}
	}
	return sel.Text()
}

// scanSelectors runs the gate and field extractor over every element
// matched by the selectors, up to perSelector elements each.
func scanSelectors(doc *goquery.Document, selectors []string, perSelector int, conv rentsync.Converter) []rentsync.Record {
	var records []rentsync.Record

	// Selectors overlap (an element can match several class hints), so
	// regions are deduplicated by their normalized text.
	seen := make(map[string]bool)

	for _, selector := range selectors {
		doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= perSelector {
				return false
			}

			text := extract.Normalize(regionText(sel, conv))
			if seen[text] {
				return true
			}
			seen[text] = true

			if !isRentalContent(text) {
				return true
			}

			rec := extract.Fields(text)
			if rec.FieldCount() >= extract.MinFields {
				records = append(records, rec)
			}
			return true
		})
	}

	return records
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rentsync.Errorf(rentsync.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
