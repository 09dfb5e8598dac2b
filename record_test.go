package rentsync_test

import (
	"testing"

	"github.com/fwojciec/rentsync"
	"github.com/stretchr/testify/assert"
)

func TestRecord_SameListing_address_equality_ignores_whitespace_and_case(t *testing.T) {
	t.Parallel()

	a := rentsync.Record{Address: "1000 Rambling Oaks - 12"}
	b := rentsync.Record{Address: "  1000  rambling   OAKS - 12 "}

	assert.True(t, a.SameListing(b))
	assert.True(t, b.SameListing(a))
}

func TestRecord_SameListing_address_mismatch_overrides_field_matches(t *testing.T) {
	t.Parallel()

	// Identical layout and price but different addresses: distinct units.
	a := rentsync.Record{Address: "100 Main St", Bedrooms: 2, Bathrooms: 1, Price: "$975"}
	b := rentsync.Record{Address: "102 Main St", Bedrooms: 2, Bathrooms: 1, Price: "$975"}

	assert.False(t, a.SameListing(b))
}

func TestRecord_SameListing_fallback_requires_two_of_three(t *testing.T) {
	t.Parallel()

	base := rentsync.Record{Bedrooms: 2, Bathrooms: 1, Price: "$975"}

	assert.True(t, base.SameListing(rentsync.Record{Bedrooms: 2, Bathrooms: 1}))
	assert.True(t, base.SameListing(rentsync.Record{Bedrooms: 2, Price: "$975"}))
	assert.False(t, base.SameListing(rentsync.Record{Bedrooms: 2, Bathrooms: 2, Price: "$1,400"}))
	assert.False(t, base.SameListing(rentsync.Record{Bedrooms: 2}))
}

func TestRecord_Changed_tracks_price_availability_amenities_description(t *testing.T) {
	t.Parallel()

	stored := rentsync.Record{
		Price:         "$975",
		AvailableDate: "July 15",
		Description:   "Newly remodeled 2 bedroom condo.",
	}

	same := stored
	assert.False(t, stored.Changed(same))

	priceChanged := stored
	priceChanged.Price = "$1,025"
	assert.True(t, stored.Changed(priceChanged))

	availDropped := stored
	availDropped.AvailableDate = ""
	assert.True(t, stored.Changed(availDropped))

	amenitiesAdded := stored
	amenitiesAdded.Amenities = []string{"pool"}
	assert.True(t, stored.Changed(amenitiesAdded))

	// Untracked fields do not count as changes.
	sqftChanged := stored
	sqftChanged.SquareFeet = "900 sq ft"
	assert.False(t, stored.Changed(sqftChanged))
}

func TestRecord_Hash_is_stable_and_field_sensitive(t *testing.T) {
	t.Parallel()

	a := rentsync.Record{Address: "100 Main St", Price: "$975"}
	b := rentsync.Record{Address: "100 Main St", Price: "$975"}
	c := rentsync.Record{Address: "100 Main St", Price: "$980"}

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.Len(t, a.Hash(), 16)
}

func TestRecord_FieldCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, rentsync.Record{}.FieldCount())
	assert.True(t, rentsync.Record{}.IsZero())

	r := rentsync.Record{
		Title:       "100 Main St",
		Address:     "100 Main St",
		Price:       "$975",
		Bedrooms:    2,
		Description: "2 bed 1 bath condo.",
	}
	assert.Equal(t, 5, r.FieldCount())
}
