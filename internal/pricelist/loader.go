// internal/pricelist/loader.go
package pricelist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/metrics"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

// Result summarises one ingestion run.
type Result struct {
	Source  models.Source `json:"source"`
	Format  Format        `json:"format"`
	Loaded  int           `json:"loaded"`
	Skipped int           `json:"skipped"`
	Deleted int64         `json:"deleted"`
}

// Loader replaces catalog partitions from parsed price lists. Runs are serialised
// and each replacement is a single transaction.
type Loader struct {
	mu    sync.Mutex
	store repository.Store
}

func NewLoader(store repository.Store) *Loader {
	return &Loader{store: store}
}

// Exclusive runs fn while no ingestion run is in progress. Operations that rewrite
// partitions outside Load go through here.
func (l *Loader) Exclusive(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// Load detects the layout of t and ingests it into source.
func (l *Loader) Load(ctx context.Context, source models.Source, t *Table) (*Result, error) {
	switch DetectFormat(t) {
	case FormatSimple:
		return l.LoadSimple(ctx, source, t)
	default:
		return l.LoadStandard(ctx, source, t)
	}
}

func (l *Loader) LoadStandard(ctx context.Context, source models.Source, t *Table) (*Result, error) {
	return l.load(ctx, source, FormatStandard, t, ParseStandard)
}

func (l *Loader) LoadSimple(ctx context.Context, source models.Source, t *Table) (*Result, error) {
	return l.load(ctx, source, FormatSimple, t, ParseSimple)
}

type parseFunc func(*Table, models.Source) ([]models.Product, int, error)

func (l *Loader) load(ctx context.Context, source models.Source, format Format, t *Table, parse parseFunc) (*Result, error) {
	start := time.Now()
	if !source.Valid() {
		return nil, structural(source, ErrInvalidSource)
	}

	products, skipped, err := parse(t, source)
	if err != nil {
		metrics.IngestFailures.WithLabelValues(string(source)).Inc()
		return nil, err
	}

	result := &Result{Source: source, Format: format, Loaded: len(products), Skipped: skipped}

	l.mu.Lock()
	defer l.mu.Unlock()

	err = l.store.Transaction(ctx, func(tx repository.Store) error {
		deleted, err := tx.DeleteBySource(ctx, source)
		if err != nil {
			return err
		}
		result.Deleted = deleted
		return tx.InsertProducts(ctx, products)
	})
	if err != nil {
		metrics.IngestFailures.WithLabelValues(string(source)).Inc()
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, loadErr
		}
		return nil, &LoadError{Source: source, Err: err}
	}

	metrics.RecordIngest(string(source), string(format), result.Loaded, result.Skipped, start)
	logrus.WithFields(logrus.Fields{
		"source":  source,
		"format":  format,
		"loaded":  result.Loaded,
		"skipped": result.Skipped,
		"deleted": result.Deleted,
	}).Info("Price list loaded")

	return result, nil
}
