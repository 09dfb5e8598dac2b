package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/rentsync"
)

// Run executes the listings command.
func (c *ListingsCmd) Run(deps *Dependencies) error {
	listings, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rentsync.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings found. Use 'rentsync refresh <url>' to scrape a site.")
		return nil
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	}

	for _, l := range listings {
		fmt.Fprintln(deps.Stdout, formatListing(l))
	}
	return nil
}

func (c *ListingsCmd) load(deps *Dependencies) ([]*rentsync.Listing, error) {
	if c.URL == "" {
		return deps.Store.AllListings(deps.Ctx)
	}

	if c.Refresh {
		return deps.Acquirer.Query(deps.Ctx, c.URL)
	}

	site, err := rentsync.NormalizeSite(c.URL)
	if err != nil {
		return nil, err
	}
	return deps.Store.ListingsBySite(deps.Ctx, site)
}

// formatListing renders one listing as a single summary line.
func formatListing(l *rentsync.Listing) string {
	var parts []string
	parts = append(parts, l.ID)
	if l.Data.Address != "" {
		parts = append(parts, l.Data.Address)
	} else if l.Data.Title != "" {
		parts = append(parts, l.Data.Title)
	}
	if l.Data.Price != "" {
		parts = append(parts, l.Data.Price)
	}
	if l.Data.Bedrooms > 0 {
		parts = append(parts, fmt.Sprintf("%d bed", l.Data.Bedrooms))
	}
	if l.Data.Bathrooms > 0 {
		parts = append(parts, fmt.Sprintf("%d bath", l.Data.Bathrooms))
	}
	if l.Data.AvailableDate != "" {
		parts = append(parts, "available "+l.Data.AvailableDate)
	}
	return strings.Join(parts, "  ")
}
