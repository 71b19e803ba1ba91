// internal/markup/policy.go
package markup

import (
	"github.com/shopspring/decimal"
)

// Legacy correction thresholds. Stored prices from the old scheme already carry the
// standard markup; these bound when subtracting it back out is believed. Both values
// are heuristics awaiting product-owner review and can be overridden per policy.
var (
	DefaultMinBaseRatio = decimal.NewFromFloat(0.1)
	DefaultMinBase      = decimal.Zero
)

// Quote carries the markups that apply to one user and one catalog.
type Quote struct {
	StandardMarkup decimal.Decimal
	Override       *decimal.Decimal
}

// HasOverride reports whether the user has a personal markup.
func (q Quote) HasOverride() bool {
	return q.Override != nil
}

// Outcome is the result of pricing one base price.
type Outcome struct {
	Price int64
	// Corrected is set when a legacy stored price was reduced by the standard markup.
	Corrected bool
}

// Policy turns a stored base price into the price shown to a user.
type Policy interface {
	Name() string
	Apply(basePrice int64, q Quote) Outcome
}

// AmountPolicy adds currency amounts. A personal markup replaces the standard one,
// undoing the standard markup first when the stored price looks like it includes it.
type AmountPolicy struct {
	MinBaseRatio decimal.Decimal
	MinBase      decimal.Decimal
}

func NewAmountPolicy() AmountPolicy {
	return AmountPolicy{MinBaseRatio: DefaultMinBaseRatio, MinBase: DefaultMinBase}
}

func (AmountPolicy) Name() string { return "amount" }

func (p AmountPolicy) Apply(basePrice int64, q Quote) Outcome {
	base := decimal.NewFromInt(basePrice)

	if !q.HasOverride() {
		return Outcome{Price: base.Add(q.StandardMarkup).Floor().IntPart()}
	}

	candidate, corrected := p.correct(base, q.StandardMarkup)
	return Outcome{Price: candidate.Add(*q.Override).Floor().IntPart(), Corrected: corrected}
}

// correct subtracts the standard markup from a stored price unless the result is
// implausibly small, in which case the stored price is kept.
func (p AmountPolicy) correct(base, standard decimal.Decimal) (decimal.Decimal, bool) {
	if standard.IsZero() {
		return base, false
	}
	candidate := base.Sub(standard)
	if candidate.LessThanOrEqual(p.MinBase) || candidate.LessThan(base.Mul(p.MinBaseRatio)) {
		return base, false
	}
	return candidate, true
}

var hundred = decimal.NewFromInt(100)

// PercentPolicy scales the base price by a personal percentage. Without one the base
// price is shown unchanged; global markups do not apply.
type PercentPolicy struct{}

func (PercentPolicy) Name() string { return "percent" }

func (PercentPolicy) Apply(basePrice int64, q Quote) Outcome {
	base := decimal.NewFromInt(basePrice)
	if !q.HasOverride() {
		return Outcome{Price: basePrice}
	}
	factor := decimal.NewFromInt(1).Add(q.Override.Div(hundred))
	return Outcome{Price: base.Mul(factor).Floor().IntPart()}
}
