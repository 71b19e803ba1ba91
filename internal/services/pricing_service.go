// internal/services/pricing_service.go
package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/repository"
	"github.com/phonemarket/backend/internal/utils"
)

// Admin input bounds.
var (
	GlobalMarkupMin = decimal.Zero
	GlobalMarkupMax = decimal.NewFromInt(1_000_000)
	UserAmountMin   = decimal.NewFromInt(-1_000_000)
	UserAmountMax   = decimal.NewFromInt(1_000_000)
	UserPercentMin  = decimal.NewFromInt(-100)
	UserPercentMax  = decimal.NewFromInt(1000)
)

type PricingService struct {
	store    repository.Store
	resolver *markup.Resolver
}

type MarkupSummary struct {
	Policy   string          `json:"policy"`
	Standard decimal.Decimal `json:"standard"`
	Preorder decimal.Decimal `json:"preorder"`
}

type SetMarkupRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func NewPricingService(store repository.Store, resolver *markup.Resolver) *PricingService {
	return &PricingService{store: store, resolver: resolver}
}

func (s *PricingService) Resolver() *markup.Resolver {
	return s.resolver
}

func (s *PricingService) PolicyName() string {
	return s.resolver.Policy().Name()
}

func (s *PricingService) Summary(ctx context.Context) (*MarkupSummary, error) {
	standard, err := s.resolver.StandardMarkup(ctx, false)
	if err != nil {
		return nil, err
	}
	preorder, err := s.resolver.StandardMarkup(ctx, true)
	if err != nil {
		return nil, err
	}
	return &MarkupSummary{Policy: s.PolicyName(), Standard: standard, Preorder: preorder}, nil
}

// SetGlobalMarkup stores the standard or preorder catalog markup.
func (s *PricingService) SetGlobalMarkup(ctx context.Context, preorder bool, amount decimal.Decimal) error {
	if err := checkRange("markup", amount, GlobalMarkupMin, GlobalMarkupMax); err != nil {
		return err
	}

	key := models.SettingMarkupAmount
	if preorder {
		key = models.SettingPreorderMarkupAmount
	}
	if err := s.store.SetSetting(ctx, key, amount.String()); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"key": key, "amount": amount.String()}).Info("Global markup updated")
	return nil
}

// UserMarkupBounds returns the allowed personal markup range for the active policy.
func (s *PricingService) UserMarkupBounds() (decimal.Decimal, decimal.Decimal) {
	if s.PolicyName() == config.MarkupPolicyPercent {
		return UserPercentMin, UserPercentMax
	}
	return UserAmountMin, UserAmountMax
}

func (s *PricingService) SetUserMarkup(ctx context.Context, userID int64, value decimal.Decimal) error {
	if userID == 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidCommand)
	}
	lo, hi := s.UserMarkupBounds()
	if err := checkRange("user markup", value, lo, hi); err != nil {
		return err
	}
	if err := s.store.SetUserOverride(ctx, userID, value); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "value": value.String()}).Info("User markup set")
	return nil
}

func (s *PricingService) GetUserMarkup(ctx context.Context, userID int64) (decimal.Decimal, error) {
	override, err := s.store.GetUserOverride(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if override == nil {
		return decimal.Zero, ErrOverrideNotFound
	}
	return *override, nil
}

func (s *PricingService) RemoveUserMarkup(ctx context.Context, userID int64) error {
	removed, err := s.store.DeleteUserOverride(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrOverrideNotFound
	}

	logrus.WithField("user_id", userID).Info("User markup removed")
	return nil
}

func (s *PricingService) ListUserMarkups(ctx context.Context) ([]repository.UserOverride, error) {
	return s.store.ListUserOverrides(ctx)
}

func checkRange(field string, value, lo, hi decimal.Decimal) error {
	tag := fmt.Sprintf("gte=%s,lte=%s", lo.String(), hi.String())
	if err := utils.ValidateVar(value.InexactFloat64(), tag); err != nil {
		return &RangeError{Field: field, Value: value, Min: lo, Max: hi}
	}
	return nil
}
