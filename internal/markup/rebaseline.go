// internal/markup/rebaseline.go
package markup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

var ErrRebaselineUnsupported = errors.New("rebaseline requires the amount markup policy")

// Change is one stored price rewritten by a rebaseline run.
type Change struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	OldPrice  int64  `json:"old_price"`
	NewPrice  int64  `json:"new_price"`
}

type RebaselineReport struct {
	Scanned int      `json:"scanned"`
	Changes []Change `json:"changes"`
	DryRun  bool     `json:"dry_run"`
}

// Rebaseline strips the standard markup from records of a source created before the
// cut-off, using the same plausibility thresholds as the amount policy. Once every
// legacy record is rewritten the correction heuristic becomes a no-op.
func Rebaseline(ctx context.Context, store repository.Store, policy Policy, source models.Source, before time.Time, dryRun bool) (*RebaselineReport, error) {
	amount, ok := policy.(AmountPolicy)
	if !ok {
		return nil, ErrRebaselineUnsupported
	}

	report := &RebaselineReport{DryRun: dryRun}
	err := store.Transaction(ctx, func(tx repository.Store) error {
		standard, err := NewResolver(tx, policy).StandardMarkup(ctx, source.IsPreorder())
		if err != nil {
			return fmt.Errorf("failed to load standard markup: %w", err)
		}
		if standard.IsZero() {
			return nil
		}

		products, err := tx.ListProductsBefore(ctx, source, before)
		if err != nil {
			return err
		}
		report.Scanned = len(products)

		for _, p := range products {
			newPrice, changed := amount.baseline(p.Price, standard)
			if !changed {
				continue
			}
			report.Changes = append(report.Changes, Change{
				ProductID: p.ID,
				Name:      p.Name,
				OldPrice:  p.Price,
				NewPrice:  newPrice,
			})
			if dryRun {
				continue
			}
			if err := tx.UpdateProductPrice(ctx, p.ID, newPrice); err != nil {
				return fmt.Errorf("failed to update product %d: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"source":  source,
		"before":  before.Format(time.RFC3339),
		"scanned": report.Scanned,
		"changed": len(report.Changes),
		"dry_run": dryRun,
	}).Info("Rebaseline finished")
	return report, nil
}

func (p AmountPolicy) baseline(price int64, standard decimal.Decimal) (int64, bool) {
	candidate, corrected := p.correct(decimal.NewFromInt(price), standard)
	return candidate.Floor().IntPart(), corrected
}
