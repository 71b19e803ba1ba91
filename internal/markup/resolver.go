// internal/markup/resolver.go
package markup

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/metrics"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
)

// NewPolicy builds the policy named by the configuration.
func NewPolicy(cfg config.MarkupConfig) (Policy, error) {
	switch cfg.Policy {
	case "", config.MarkupPolicyAmount:
		p := NewAmountPolicy()
		if cfg.LegacyMinBaseRatio > 0 {
			p.MinBaseRatio = decimal.NewFromFloat(cfg.LegacyMinBaseRatio)
		}
		p.MinBase = decimal.NewFromInt(cfg.LegacyMinBase)
		return p, nil
	case config.MarkupPolicyPercent:
		return PercentPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown markup policy %q", cfg.Policy)
	}
}

// Resolver computes the price a user sees for a stored base price.
type Resolver struct {
	settings repository.SettingsStore
	policy   Policy
}

func NewResolver(settings repository.SettingsStore, policy Policy) *Resolver {
	return &Resolver{settings: settings, policy: policy}
}

func (r *Resolver) Policy() Policy {
	return r.policy
}

// WithStore returns a resolver reading from another store, typically one bound to a transaction.
func (r *Resolver) WithStore(settings repository.SettingsStore) *Resolver {
	return &Resolver{settings: settings, policy: r.policy}
}

// StandardMarkup returns the global markup for the catalog. A missing or malformed
// setting counts as zero.
func (r *Resolver) StandardMarkup(ctx context.Context, isPreorder bool) (decimal.Decimal, error) {
	key := models.SettingMarkupAmount
	if isPreorder {
		key = models.SettingPreorderMarkupAmount
	}

	value, ok, err := r.settings.GetSetting(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": value}).Warn("Ignoring malformed markup setting")
		return decimal.Zero, nil
	}
	return amount, nil
}

// Quote loads the markups for a user once so a whole listing can be priced with them.
// userID 0 means an anonymous viewer.
func (r *Resolver) Quote(ctx context.Context, userID int64, isPreorder bool) (Quote, error) {
	standard, err := r.StandardMarkup(ctx, isPreorder)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to load standard markup: %w", err)
	}

	q := Quote{StandardMarkup: standard}
	if userID == 0 {
		return q, nil
	}

	override, err := r.settings.GetUserOverride(ctx, userID)
	if err != nil {
		return q, fmt.Errorf("failed to load user markup: %w", err)
	}
	q.Override = override
	return q, nil
}

// Apply prices one base price with an already loaded quote.
func (r *Resolver) Apply(basePrice int64, q Quote) int64 {
	out := r.policy.Apply(basePrice, q)
	if out.Corrected {
		metrics.LegacyCorrections.Inc()
	}
	return out.Price
}

// Price resolves the effective price and never fails. Storage errors are logged and
// the lookup that failed is treated as absent.
func (r *Resolver) Price(ctx context.Context, basePrice, userID int64, isPreorder bool) int64 {
	return r.Apply(basePrice, r.QuoteOrDefault(ctx, userID, isPreorder))
}

// QuoteOrDefault is Quote for display paths: failures are logged and counted.
func (r *Resolver) QuoteOrDefault(ctx context.Context, userID int64, isPreorder bool) Quote {
	q, err := r.Quote(ctx, userID, isPreorder)
	if err != nil {
		metrics.PricingErrors.Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"preorder": isPreorder,
		}).Error("Markup lookup failed, using defaults")
	}
	return q
}
