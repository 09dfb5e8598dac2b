package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/rentsync"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	if c.All {
		return c.runAll(deps)
	}

	if c.URL == "" {
		return fmt.Errorf("a site URL is required unless --all is given")
	}

	result, err := deps.Acquirer.Acquire(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rentsync.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d added or updated, %d removed\n", c.URL, result.AddedOrUpdated, result.Removed)
	return nil
}

func (c *RefreshCmd) runAll(deps *Dependencies) error {
	results, err := deps.Acquirer.RefreshAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rentsync.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites refreshed. Use 'rentsync refresh <url>' to add one.")
		return nil
	}

	sites := make([]rentsync.Site, 0, len(results))
	for site := range results {
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i] < sites[j] })

	for _, site := range sites {
		result := results[site]
		fmt.Fprintf(deps.Stdout, "%s: %d added or updated, %d removed\n", site, result.AddedOrUpdated, result.Removed)
	}
	return nil
}
