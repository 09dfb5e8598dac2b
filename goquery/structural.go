package goquery

import (
	"context"

	"github.com/fwojciec/rentsync"
)

// Ensure StructuralStrategy implements rentsync.Strategy at compile time.
var _ rentsync.Strategy = (*StructuralStrategy)(nil)

// maxStructuralElements caps how many elements one selector contributes.
const maxStructuralElements = 20

// structuralSelectors target class names rental-management sites tend to
// put on listing containers.
var structuralSelectors = []string{
	"[class*=rental]",
	"[class*=listing]",
	"[class*=property]",
	"[class*=unit]",
	"[class*=apartment]",
	"[class*=house]",
	"[class*=condo]",
}

// StructuralStrategy extracts records from elements whose class names
// hint at listing content.
type StructuralStrategy struct {
	conv rentsync.Converter
}

// NewStructuralStrategy creates a new StructuralStrategy. The converter
// is optional; when nil, plain DOM text is used.
func NewStructuralStrategy(conv rentsync.Converter) *StructuralStrategy {
	return &StructuralStrategy{conv: conv}
}

// Name returns the strategy's identifier.
func (s *StructuralStrategy) Name() string {
	return "structural"
}

// Extract scans the page for class-hinted listing regions.
func (s *StructuralStrategy) Extract(_ context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	doc, err := parse(page.HTML)
	if err != nil {
		return nil, err
	}
	return scanSelectors(doc, structuralSelectors, maxStructuralElements, s.conv), nil
}
