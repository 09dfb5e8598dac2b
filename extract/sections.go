package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/rentsync"
)

// Ensure SectionStrategy implements rentsync.Strategy at compile time.
var _ rentsync.Strategy = (*SectionStrategy)(nil)

// Region-boundary markers: a new address, price, or bed/bath token tends
// to open a new listing region in flat page text.
var boundaryRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s+[A-Za-z][\w ]*(?:Oaks|Way|Street|Avenue|Road|Drive|Boulevard)\b`),
	regexp.MustCompile(`\$\d`),
	regexp.MustCompile(`(?i)\d+\s*(?:bed|bath)`),
}

var sectionKeywords = []string{"bed", "bath", "sq ft", "$", "available"}

// SectionStrategy extracts records from flat page text by splitting it
// into listing-shaped regions: blank-line sections plus regions opened
// by address/price/bed-bath boundaries. When no region yields a full
// record, a single lenient record is attempted over the whole page.
type SectionStrategy struct{}

// NewSectionStrategy creates a new SectionStrategy.
func NewSectionStrategy() *SectionStrategy {
	return &SectionStrategy{}
}

// Name returns the strategy's identifier.
func (s *SectionStrategy) Name() string {
	return "sections"
}

// Extract scans the page text and returns candidate records.
func (s *SectionStrategy) Extract(_ context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	text := page.Text
	if text == "" {
		text = Normalize(page.HTML)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var records []rentsync.Record
	for _, block := range blocks(text) {
		rec := Fields(Normalize(block))
		if rec.FieldCount() >= MinFields {
			records = append(records, rec)
		}
	}
	if len(records) > 0 {
		return records, nil
	}

	if rec := Lenient(Normalize(text)); rec.FieldCount() >= MinFieldsLenient {
		return []rentsync.Record{rec}, nil
	}
	return nil, nil
}

// blocks returns candidate listing regions from flat text.
func blocks(text string) []string {
	var out []string

	for _, re := range boundaryRes {
		for _, region := range splitAt(text, re) {
			if len(strings.TrimSpace(region)) > minBlockLen {
				out = append(out, region)
			}
		}
	}

	for _, section := range newlineRe.Split(text, -1) {
		section = strings.TrimSpace(section)
		if len(section) <= 100 {
			continue
		}
		if containsAny(strings.ToLower(section), sectionKeywords) {
			out = append(out, section)
		}
	}

	return out
}

// splitAt slices text into regions starting at each match of the
// boundary pattern and running to the next match (or end of text).
func splitAt(text string, re *regexp.Regexp) []string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	regions := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		regions = append(regions, text[loc[0]:end])
	}
	return regions
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
