package goquery

import (
	"context"

	"github.com/fwojciec/rentsync"
)

// Ensure CardStrategy implements rentsync.Strategy at compile time.
var _ rentsync.Strategy = (*CardStrategy)(nil)

const maxCardElements = 25

// cardSelectors target generic card/tile containers that sites without
// semantic class names use for listings.
var cardSelectors = []string{
	"[class*=card]",
	"[class*=item]",
	"[class*=tile]",
	"article",
	"section",
	"div[class*=listing]",
}

// CardStrategy extracts records from card-like containers.
type CardStrategy struct {
	conv rentsync.Converter
}

// NewCardStrategy creates a new CardStrategy. The converter is optional;
// when nil, plain DOM text is used.
func NewCardStrategy(conv rentsync.Converter) *CardStrategy {
	return &CardStrategy{conv: conv}
}

// Name returns the strategy's identifier.
func (s *CardStrategy) Name() string {
	return "cards"
}

// Extract scans the page for card-like listing regions.
func (s *CardStrategy) Extract(_ context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	doc, err := parse(page.HTML)
	if err != nil {
		return nil, err
	}
	return scanSelectors(doc, cardSelectors, maxCardElements, s.conv), nil
}
