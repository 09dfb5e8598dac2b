package pipeline_test

import (
	"testing"

	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	records := []rentsync.Record{
		{Address: "1000 Rambling Oaks - 12", Price: "$975", Bedrooms: 2, Bathrooms: 1},
		{Description: "noise without address or price"},
		{Address: "1000 RAMBLING OAKS - 12", Price: "$975"},
		{Address: "205 Elm Street", Price: "$1,400", Bedrooms: 3},
	}

	kept := pipeline.Deduplicate(records)
	require.Len(t, kept, 2)
	assert.Equal(t, "1000 Rambling Oaks - 12", kept[0].Address)
	assert.Equal(t, 2, kept[0].Bedrooms, "first occurrence should win")
	assert.Equal(t, "205 Elm Street", kept[1].Address)
}

func TestDeduplicate_AddresslessFieldMatch(t *testing.T) {
	t.Parallel()

	// Without addresses, two of bedrooms, bathrooms, and price matching
	// identifies the same listing.
	records := []rentsync.Record{
		{Price: "$975", Bedrooms: 2, Bathrooms: 1},
		{Price: "$975", Bedrooms: 2},
		{Price: "$1,400", Bedrooms: 3, Bathrooms: 2},
	}

	kept := pipeline.Deduplicate(records)
	require.Len(t, kept, 2)
	assert.Equal(t, "$975", kept[0].Price)
	assert.Equal(t, "$1,400", kept[1].Price)
}

func TestDeduplicate_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pipeline.Deduplicate(nil))
}
