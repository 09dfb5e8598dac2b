package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Store    rentsync.Store
	Acquirer *pipeline.Acquirer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	JSONStore string `name:"json-store" help:"Use a JSON file store at this path instead of SQLite"`
	Static    bool   `help:"Fetch with plain HTTP instead of a headless browser (static sites only)"`

	Refresh  RefreshCmd  `cmd:"" help:"Scrape a listing site and reconcile it into the store"`
	Listings ListingsCmd `cmd:"" help:"Show stored listings"`
	Sites    SitesCmd    `cmd:"" help:"Show tracked sites and their stats"`
	Purge    PurgeCmd    `cmd:"" help:"Delete listings not updated recently"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	URL         string `arg:"" optional:"" help:"Listing site URL"`
	All         bool   `short:"a" help:"Refresh every tracked site"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent site limit with --all"`
}

// ListingsCmd is the "listings" subcommand.
type ListingsCmd struct {
	URL     string `arg:"" optional:"" help:"Restrict to one site"`
	JSON    bool   `help:"Output as JSON"`
	Refresh bool   `short:"r" help:"Refresh the site first if the store is stale"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	Days int `default:"30" help:"Delete listings last observed more than this many days ago"`
}
