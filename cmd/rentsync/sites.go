package main

import (
	"fmt"

	"github.com/fwojciec/rentsync"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites, err := deps.Store.Sites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rentsync.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites tracked. Use 'rentsync refresh <url>' to add one.")
		return nil
	}

	total := 0
	for _, s := range sites {
		last := "never"
		if s.LastScraped != nil {
			last = s.LastScraped.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(deps.Stdout, "%s  %d listings  last scraped %s  %s\n", s.Site, s.ListingCount, last, s.URL)
		total += s.ListingCount
	}
	fmt.Fprintf(deps.Stdout, "\n%d listings across %d sites\n", total, len(sites))
	return nil
}
