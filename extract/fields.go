package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/rentsync"
)

// Field-count thresholds applied by strategies: records below MinFields
// are noise, except on the lenient whole-page path where MinFieldsLenient
// applies.
const (
	MinFields        = 4
	MinFieldsLenient = 2
)

// minBlockLen rejects text blocks too short to describe a listing.
const minBlockLen = 50

const monthDay = `[A-Za-z]+\s+\d{1,2}(?:st|nd|rd|th)?`

var (
	priceRe = regexp.MustCompile(`\$([\d,]+)`)
	bedRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:bedrooms?|beds?|br)\b`)
	bathRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:bathrooms?|baths?|ba)\b`)
	sqftRe  = regexp.MustCompile(`(?i)(\d+)\s*sq\.?\s*ft`)
	typeRe  = regexp.MustCompile(`(?i)\b(apartment|condo|house|townhouse|studio)\b`)
	nowRe   = regexp.MustCompile(`(?i)\bnow\b`)

	// Availability patterns, in match-priority order.
	availRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)available\s+(` + monthDay + `)`),
		regexp.MustCompile(`(?i)(` + monthDay + `)\s+available`),
		regexp.MustCompile(`(?i)move[-\s]?in\s+(` + monthDay + `)`),
		regexp.MustCompile(`(?i)ready\s+(` + monthDay + `)`),
	}

	// Street-address patterns, in match-priority order: numbered street
	// with a known suffix plus a directional qualifier, the same without
	// the qualifier (optional trailing unit), then a plain
	// abbreviated-suffix address.
	addressRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\s+[\w\s]+(?:Oaks|Way|Street|Avenue|Road|Drive|Boulevard)\s+(?:East|West|North|South|N|S|E|W)\b(?:\s*-\s*\d+)?)`),
		regexp.MustCompile(`(?i)(\d+\s+[\w\s]+(?:Oaks|Way|Street|Avenue|Road|Drive|Boulevard)(?:\s*-\s*\d+)?)`),
		regexp.MustCompile(`(?i)(\d+\s+[\w\s]+(?:Street|Avenue|Road|Drive|Boulevard|Blvd|St|Ave|Rd|Dr))\b`),
	}

	cityStateZipRe = regexp.MustCompile(`,\s*([A-Za-z\s]+),\s*([A-Z]{2})\s*(\d{5})`)
)

// boilerplatePhrases mark office/portal chrome (sign-in forms, account
// pages) that must never surface as a listing.
var boilerplatePhrases = []string{
	"resident sign in",
	"email address",
	"password",
	"system",
}

// Fields extracts a partial rental record from a cleaned text block.
// Blocks under the minimum length yield an empty record, as do blocks
// whose derived description matches portal boilerplate.
func Fields(text string) rentsync.Record {
	if len(text) < minBlockLen {
		return rentsync.Record{}
	}
	// Office/portal chrome (sign-in forms, account pages) must never
	// surface as a listing. The check runs on the derived description,
	// not the whole block, so a listing mentioning e.g. a security
	// system is not discarded.
	desc := description(text)
	if isBoilerplate(desc) {
		return rentsync.Record{}
	}

	var r rentsync.Record

	if m := priceRe.FindStringSubmatch(text); m != nil {
		r.Price = "$" + m[1]
	}
	if m := bedRe.FindStringSubmatch(text); m != nil {
		r.Bedrooms, _ = strconv.Atoi(m[1])
	}
	if m := bathRe.FindStringSubmatch(text); m != nil {
		r.Bathrooms, _ = strconv.Atoi(m[1])
	}
	if m := sqftRe.FindStringSubmatch(text); m != nil {
		r.SquareFeet = m[1] + " sq ft"
	}

	for _, re := range availRes {
		if m := re.FindStringSubmatch(text); m != nil {
			r.AvailableDate = strings.TrimSpace(m[1])
			break
		}
	}
	// An immediate-availability signal wins over any date already found.
	if strings.Contains(strings.ToLower(text), "immediate") || nowRe.MatchString(text) {
		r.AvailableDate = "Immediate"
	}

	if m := typeRe.FindStringSubmatch(text); m != nil {
		r.PropertyType = titleCase(m[1])
	}

	for _, re := range addressRes {
		if m := re.FindStringSubmatch(text); m != nil {
			r.Address = spaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
			break
		}
	}

	if m := cityStateZipRe.FindStringSubmatch(text); m != nil {
		r.City = strings.TrimSpace(m[1])
		r.State = m[2]
		r.ZipCode = m[3]
	}

	r.Description = desc

	if r.Address != "" {
		r.Title = r.Address
	} else {
		r.Title = "Rental Property"
	}

	return r
}

// Lenient extracts whatever fields the whole page text yields, used as
// a last resort when no structured block produced a record. The record
// is empty unless at least one data field was found.
func Lenient(text string) rentsync.Record {
	var r rentsync.Record

	if m := priceRe.FindStringSubmatch(text); m != nil {
		r.Price = "$" + m[1]
	}
	if m := bedRe.FindStringSubmatch(text); m != nil {
		r.Bedrooms, _ = strconv.Atoi(m[1])
	}
	if m := bathRe.FindStringSubmatch(text); m != nil {
		r.Bathrooms, _ = strconv.Atoi(m[1])
	}
	if m := sqftRe.FindStringSubmatch(text); m != nil {
		r.SquareFeet = m[1] + " sq ft"
	}
	if m := typeRe.FindStringSubmatch(text); m != nil {
		r.PropertyType = titleCase(m[1])
	}

	if r.IsZero() {
		return r
	}

	r.Title = "Rental Property"
	r.Description = truncate(text, 200)
	return r
}

func isBoilerplate(description string) bool {
	d := strings.ToLower(description)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(d, phrase) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
