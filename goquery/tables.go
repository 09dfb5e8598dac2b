package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/extract"
)

// Ensure TableStrategy implements rentsync.Strategy at compile time.
var _ rentsync.Strategy = (*TableStrategy)(nil)

const maxTables = 5

var tableSelectors = []string{
	"table",
	"[class*=table]",
	"[class*=grid]",
}

// TableStrategy extracts records from table or grid rows, one candidate
// record per data row. Header rows are skipped.
type TableStrategy struct {
	conv rentsync.Converter
}

// NewTableStrategy creates a new TableStrategy. The converter is
// optional; when nil, plain DOM text is used.
func NewTableStrategy(conv rentsync.Converter) *TableStrategy {
	return &TableStrategy{conv: conv}
}

// Name returns the strategy's identifier.
func (s *TableStrategy) Name() string {
	return "tables"
}

// Extract scans the page's tables for listing rows.
func (s *TableStrategy) Extract(_ context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	doc, err := parse(page.HTML)
	if err != nil {
		return nil, err
	}

	var records []rentsync.Record
	for _, selector := range tableSelectors {
		doc.Find(selector).EachWithBreak(func(i int, table *goquery.Selection) bool {
			if i >= maxTables {
				return false
			}

			table.Find("tr").Each(func(row int, tr *goquery.Selection) {
				if row == 0 {
					return // header row
				}

				text := rowText(tr)
				if s.conv != nil {
					text = regionText(tr, s.conv)
				}
				if !isRentalContent(text) {
					return
				}

				rec := extract.Fields(extract.Normalize(text))
				if rec.FieldCount() >= extract.MinFields {
					records = append(records, rec)
				}
			})
			return true
		})
	}

	return records, nil
}

// rowText joins a row's cell texts with spaces so adjacent cells don't
// run together into bogus tokens.
func rowText(tr *goquery.Selection) string {
	cells := tr.Find("td, th")
	if cells.Length() == 0 {
		return tr.Text()
	}

	parts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, td *goquery.Selection) {
		parts = append(parts, td.Text())
	})
	return strings.Join(parts, " ")
}
