package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/extract"
	"github.com/fwojciec/rentsync/fs"
	"github.com/fwojciec/rentsync/gemini"
	"github.com/fwojciec/rentsync/goquery"
	"github.com/fwojciec/rentsync/htmltomarkdown"
	rentsynchttp "github.com/fwojciec/rentsync/http"
	"github.com/fwojciec/rentsync/pipeline"
	"github.com/fwojciec/rentsync/rod"
	rentsyncslog "github.com/fwojciec/rentsync/slog"
	"github.com/fwojciec/rentsync/sqlite"
	"github.com/fwojciec/rentsync/trafilatura"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database, when the SQLite store is selected.
	DB *sqlite.DB

	// Store for end-to-end testing.
	Store rentsync.Store
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Local configuration (API keys) may live in a .env file.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rentsync"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rentsync --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{Level: level}))
	deps.Logger = logger

	// Select the store backend.
	var store rentsync.Store
	if cli.JSONStore != "" {
		store = fs.NewStore(cli.JSONStore)
	} else {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set RENTSYNC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		store = sqlite.NewStore(m.DB)
	}
	defer m.Close()

	m.Store = rentsyncslog.NewLoggingStore(store, logger)
	deps.Store = m.Store

	// Commands that may scrape need the full acquisition pipeline,
	// including a browser; the rest run against the store alone.
	command, _, _ := strings.Cut(kongCtx.Command(), " ")
	needsPipeline := command == "refresh" || (command == "listings" && cli.Listings.Refresh)
	if needsPipeline {
		var fetcher rentsync.Fetcher
		if cli.Static {
			fetcher = rentsynchttp.NewFetcher()
		} else {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static for static sites")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browserFetcher
		}
		defer fetcher.Close()

		deps.Acquirer = &pipeline.Acquirer{
			Fetcher:     rod.NewLoggingFetcher(fetcher, logger),
			Extractor:   trafilatura.NewExtractor(),
			Chain:       pipeline.NewChain(logger, buildStrategies(ctx, logger)...),
			Store:       deps.Store,
			Limiter:     pipeline.NewDomainLimiter(1.0),
			Logger:      logger,
			Concurrency: cli.Refresh.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// buildStrategies assembles the extraction strategy chain: the model
// first when an API key is configured, then the DOM heuristics from
// most to least specific, then the text-pattern fallback.
func buildStrategies(ctx context.Context, logger *slog.Logger) []rentsync.Strategy {
	conv := htmltomarkdown.NewConverter()

	var strategies []rentsync.Strategy
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			logger.Warn("gemini client unavailable, using pattern strategies only", "error", err)
		} else {
			strategies = append(strategies, gemini.NewStrategy(client, gemini.DefaultModel))
		}
	}

	strategies = append(strategies,
		goquery.NewStructuralStrategy(conv),
		goquery.NewCardStrategy(conv),
		goquery.NewTableStrategy(conv),
		extract.NewSectionStrategy(),
	)
	return strategies
}

func defaultDBPath() string {
	if path := os.Getenv("RENTSYNC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "rentsync.db"
	}
	dir := filepath.Join(home, ".rentsync")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "rentsync.db")
}
