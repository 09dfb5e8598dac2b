package rentsync

import "time"

// Listing is a persisted, identity-resolved rental record. The ID is
// assigned once at first insertion from the owning site's counter and is
// never reused or mutated; only Data and ScrapedAt change on update.
type Listing struct {
	ID        string    `json:"id"`
	Site      Site      `json:"website"`
	SourceURL string    `json:"source_url"`
	ScrapedAt time.Time `json:"scraped_at"`
	Data      Record    `json:"data"`
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.Site == "" {
		return Errorf(EINVALID, "listing site required")
	}
	if l.SourceURL == "" {
		return Errorf(EINVALID, "listing source URL required")
	}
	return nil
}
