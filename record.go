package rentsync

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Record is a candidate rental listing as extracted from a page. Every
// field is optional: extraction is best-effort and produces whatever
// subset of fields the source text yields. The zero value means "nothing
// extracted".
type Record struct {
	Title         string   `json:"title,omitempty"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	ZipCode       string   `json:"zip_code,omitempty"`
	Price         string   `json:"price,omitempty"`
	Bedrooms      int      `json:"bedrooms,omitempty"`
	Bathrooms     int      `json:"bathrooms,omitempty"`
	SquareFeet    string   `json:"square_feet,omitempty"`
	AvailableDate string   `json:"available_date,omitempty"`
	PropertyType  string   `json:"property_type,omitempty"`
	Description   string   `json:"description,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
}

// IsZero reports whether no field was extracted.
func (r Record) IsZero() bool {
	return r.FieldCount() == 0
}

// FieldCount returns the number of populated fields.
func (r Record) FieldCount() int {
	n := 0
	for _, s := range []string{
		r.Title, r.Address, r.City, r.State, r.ZipCode, r.Price,
		r.SquareFeet, r.AvailableDate, r.PropertyType, r.Description,
	} {
		if s != "" {
			n++
		}
	}
	if r.Bedrooms > 0 {
		n++
	}
	if r.Bathrooms > 0 {
		n++
	}
	if len(r.Amenities) > 0 {
		n++
	}
	return n
}

// NormalizedAddress returns the address lower-cased, trimmed, and with
// internal whitespace collapsed to single spaces. Returns the empty
// string if no address was extracted.
func (r Record) NormalizedAddress() string {
	return strings.Join(strings.Fields(strings.ToLower(r.Address)), " ")
}

// SameListing reports whether two records identify the same rental unit.
// When both records carry an address, normalized address equality is the
// sole test. Otherwise at least 2 of bedrooms, bathrooms and price must
// match, compared as strings.
func (r Record) SameListing(other Record) bool {
	if r.Address != "" && other.Address != "" {
		return r.NormalizedAddress() == other.NormalizedAddress()
	}

	matches := 0
	if r.Bedrooms > 0 && other.Bedrooms > 0 && r.Bedrooms == other.Bedrooms {
		matches++
	}
	if r.Bathrooms > 0 && other.Bathrooms > 0 && r.Bathrooms == other.Bathrooms {
		matches++
	}
	if r.Price != "" && other.Price != "" && strings.EqualFold(r.Price, other.Price) {
		matches++
	}
	return matches >= 2
}

// Changed reports whether the tracked fields (price, availability,
// amenities, description) differ between the stored record and a freshly
// observed one. A field present on only one side counts as a change.
func (r Record) Changed(observed Record) bool {
	pairs := [][2]string{
		{r.Price, observed.Price},
		{r.AvailableDate, observed.AvailableDate},
		{strings.Join(r.Amenities, ","), strings.Join(observed.Amenities, ",")},
		{r.Description, observed.Description},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			return true
		}
	}
	return false
}

// Hash returns a hex-encoded xxHash of the record's canonical form,
// used by stores as a cheap change-detection fingerprint.
func (r Record) Hash() string {
	var sb strings.Builder
	for _, s := range []string{
		r.Title, r.Address, r.City, r.State, r.ZipCode, r.Price,
		strconv.Itoa(r.Bedrooms), strconv.Itoa(r.Bathrooms),
		r.SquareFeet, r.AvailableDate, r.PropertyType, r.Description,
		strings.Join(r.Amenities, ","),
	} {
		sb.WriteString(s)
		sb.WriteByte(0)
	}

	h := xxhash.Sum64String(sb.String())
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
