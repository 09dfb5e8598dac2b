package pipeline

import "github.com/fwojciec/rentsync"

// Deduplicate collapses a strategy's raw output into one record per
// property. Records carrying neither an address nor a price are noise
// and are dropped; among records describing the same listing the first
// occurrence wins, since earlier matches come from more specific page
// regions.
func Deduplicate(records []rentsync.Record) []rentsync.Record {
	kept := make([]rentsync.Record, 0, len(records))
	for _, rec := range records {
		if rec.Address == "" && rec.Price == "" {
			continue
		}
		dup := false
		for _, k := range kept {
			if k.SameListing(rec) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, rec)
		}
	}
	return kept
}
