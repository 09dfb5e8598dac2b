package rentsync

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text, with boilerplate
	// (nav, footer, sidebar, page chrome) removed.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts an HTML fragment to plain text that preserves the
// fragment's line structure (e.g., via an intermediate markdown pass).
type Converter interface {
	Convert(html string) (string, error)
}
