package mock

import "github.com/fwojciec/rentsync"

var _ rentsync.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of rentsync.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*rentsync.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*rentsync.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ rentsync.Converter = (*Converter)(nil)

// Converter is a mock implementation of rentsync.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
