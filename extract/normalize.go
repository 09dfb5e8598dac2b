// Package extract turns raw page text into candidate rental records
// using layered pattern heuristics. All functions are pure and
// deterministic; malformed input yields empty results, never errors.
package extract

import (
	"regexp"
	"strings"
)

var (
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)
	junkRe    = regexp.MustCompile(`[^\w\s$,.-]`)
	punctRe   = regexp.MustCompile(`\s*([,.])\s*`)
	numSepRe  = regexp.MustCompile(`(\d)([,.]) (\d)`)
	newlineRe = regexp.MustCompile(`\n{2,}`)
)

// Normalize cleans raw extracted text: markup tags removed, whitespace
// runs collapsed to single spaces, non-semantic punctuation stripped,
// and spacing normalized around commas and periods.
func Normalize(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = junkRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = punctRe.ReplaceAllString(s, "$1 ")
	// Comma/period spacing must not split numbers ("$1,400", "1.5 bath").
	s = numSepRe.ReplaceAllString(s, "$1$2$3")
	return strings.TrimSpace(s)
}
