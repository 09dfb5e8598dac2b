package extract

import (
	"regexp"
	"strings"
)

const maxDescriptionLen = 300

// Sentence-level patterns that tend to open an actual property
// description, in match-priority order.
var descRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:This|Newly remodeled|Available)[^.]+\.`),
	regexp.MustCompile(`(?i)(?:bedroom|bathroom|condo|apartment|home)[^.]+\.`),
	regexp.MustCompile(`(?i)(?:Features|Residents have access to)[^.]+\.`),
}

var descKeywords = []string{"bed", "bath", "sq ft", "available"}

// description derives a bounded, readable description from a text block:
// a description-opening sentence if one matches, else the first
// substantial sentence mentioning a property keyword, else a straight
// truncation of the input.
func description(text string) string {
	for _, re := range descRes {
		if m := re.FindString(text); m != "" {
			return truncate(spaceRe.ReplaceAllString(m, " "), maxDescriptionLen)
		}
	}

	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range descKeywords {
			if strings.Contains(lower, kw) {
				return truncate(sentence, maxDescriptionLen)
			}
		}
	}

	return truncate(text, 200)
}
