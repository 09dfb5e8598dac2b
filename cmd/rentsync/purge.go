package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/rentsync"
)

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, -c.Days)
	deleted, err := deps.Store.PurgeOlderThan(deps.Ctx, cutoff)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rentsync.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d listings last observed before %s\n", deleted, cutoff.Format("2006-01-02"))
	return nil
}
