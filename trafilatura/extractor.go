// Package trafilatura extracts main content from listing pages,
// discarding navigation, footers, and other page chrome before the
// text-pattern strategies run.
package trafilatura

import (
	"errors"
	"strings"

	"github.com/fwojciec/rentsync"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements rentsync.Extractor at compile time.
var _ rentsync.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (*rentsync.ExtractResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &rentsync.ExtractResult{
		Title: result.Metadata.Title,
		Text:  result.ContentText,
	}, nil
}
