// internal/markup/policy_test.go
package markup

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/config"
)

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestAmountPolicy(t *testing.T) {
	policy := NewAmountPolicy()

	tests := []struct {
		name      string
		base      int64
		standard  int64
		override  *decimal.Decimal
		want      int64
		corrected bool
	}{
		{name: "standard markup only", base: 1000, standard: 100, want: 1100},
		{name: "no markup at all", base: 1000, want: 1000},
		{name: "override replaces standard", base: 1000, standard: 100, override: amount(50), want: 950, corrected: true},
		{name: "implausible standard markup", base: 1000, standard: 950, override: amount(50), want: 1050},
		{name: "candidate at zero", base: 1000, standard: 1000, override: amount(50), want: 1050},
		{name: "candidate exactly ten percent", base: 1000, standard: 900, override: amount(0), want: 100, corrected: true},
		{name: "negative override", base: 1000, standard: 0, override: amount(-200), want: 800},
		{name: "override with zero standard", base: 5000, override: amount(300), want: 5300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quote{StandardMarkup: decimal.NewFromInt(tt.standard), Override: tt.override}
			out := policy.Apply(tt.base, q)
			assert.Equal(t, tt.want, out.Price)
			assert.Equal(t, tt.corrected, out.Corrected)
		})
	}
}

func TestAmountPolicyFloorsFractionalMarkup(t *testing.T) {
	q := Quote{StandardMarkup: decimal.RequireFromString("99.9")}
	assert.Equal(t, int64(1099), NewAmountPolicy().Apply(1000, q).Price)
}

func TestAmountPolicyCustomThresholds(t *testing.T) {
	policy := AmountPolicy{MinBaseRatio: decimal.NewFromFloat(0.5), MinBase: decimal.NewFromInt(100)}
	q := Quote{StandardMarkup: decimal.NewFromInt(600), Override: amount(50)}

	// 400 < 0.5 * 1000, so the stored price is kept
	assert.Equal(t, int64(1050), policy.Apply(1000, q).Price)

	q.StandardMarkup = decimal.NewFromInt(400)
	assert.Equal(t, int64(650), policy.Apply(1000, q).Price)
}

func TestPercentPolicy(t *testing.T) {
	policy := PercentPolicy{}

	tests := []struct {
		name     string
		base     int64
		standard int64
		override *decimal.Decimal
		want     int64
	}{
		{name: "no override ignores global markup", base: 1000, standard: 100, want: 1000},
		{name: "ten percent", base: 1000, override: amount(10), want: 1100},
		{name: "floors fractional result", base: 999, override: amount(15), want: 1148},
		{name: "discount", base: 1000, override: amount(-25), want: 750},
		{name: "minus one hundred", base: 1000, override: amount(-100), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quote{StandardMarkup: decimal.NewFromInt(tt.standard), Override: tt.override}
			out := policy.Apply(tt.base, q)
			assert.Equal(t, tt.want, out.Price)
			assert.False(t, out.Corrected)
		})
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy(config.MarkupConfig{Policy: config.MarkupPolicyAmount, LegacyMinBaseRatio: 0.2, LegacyMinBase: 10})
	require.NoError(t, err)
	ap, ok := p.(AmountPolicy)
	require.True(t, ok)
	assert.True(t, ap.MinBaseRatio.Equal(decimal.NewFromFloat(0.2)))
	assert.True(t, ap.MinBase.Equal(decimal.NewFromInt(10)))

	p, err = NewPolicy(config.MarkupConfig{Policy: config.MarkupPolicyPercent})
	require.NoError(t, err)
	assert.Equal(t, "percent", p.Name())

	_, err = NewPolicy(config.MarkupConfig{Policy: "mixed"})
	assert.Error(t, err)
}
