package pipeline

import "github.com/fwojciec/rentsync"

// BuildPlan diffs a deduplicated batch of observed records against a
// site's stored listings and returns the reconciliation plan. It is
// pure: the store is only touched when the plan is applied.
//
// Each stored listing matches at most one observed record. Observed
// records with no match become creates; matched listings become updates
// when a tracked field changed and keeps otherwise; stored listings the
// batch never matched become removes.
func BuildPlan(existing []*rentsync.Listing, batch []rentsync.Record) *rentsync.SyncPlan {
	plan := &rentsync.SyncPlan{}
	matched := make(map[string]bool, len(existing))

	for _, rec := range batch {
		var match *rentsync.Listing
		for _, l := range existing {
			if matched[l.ID] {
				continue
			}
			if l.Data.SameListing(rec) {
				match = l
				break
			}
		}
		if match == nil {
			plan.Creates = append(plan.Creates, rec)
			continue
		}

		matched[match.ID] = true
		if match.Data.Changed(rec) {
			plan.Updates = append(plan.Updates, rentsync.ListingUpdate{ID: match.ID, Data: rec})
		} else {
			plan.Keeps = append(plan.Keeps, match.ID)
		}
	}

	for _, l := range existing {
		if !matched[l.ID] {
			plan.Removes = append(plan.Removes, l.ID)
		}
	}

	return plan
}
