// internal/pricelist/errors.go
package pricelist

import (
	"errors"
	"fmt"

	"github.com/phonemarket/backend/internal/models"
)

var (
	ErrEmptySheet    = errors.New("price list has no rows")
	ErrNoHeaders     = errors.New("no product header rows found")
	ErrTooFewColumns = errors.New("simple layout needs a name and a price column")
	ErrInvalidSource = errors.New("invalid price list source")
)

// LoadError is the single error returned when a price list cannot be ingested.
// Structural errors mean the sheet does not match the expected layout; the rest are
// read or storage failures.
type LoadError struct {
	Source     models.Source
	Structural bool
	Err        error
}

func (e *LoadError) Error() string {
	if e.Structural {
		return fmt.Sprintf("price list for %s has an unexpected structure: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to load price list for %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func structural(source models.Source, err error) *LoadError {
	return &LoadError{Source: source, Structural: true, Err: err}
}
