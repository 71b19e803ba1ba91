// internal/services/admin_console_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemarket/backend/internal/markup"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/session"
)

const admin int64 = 1

func TestPromptCompletesWithNextNumber(t *testing.T) {
	svc, store := newPricingService(t, markup.NewAmountPolicy())
	console := NewAdminConsole(session.NewMemoryStore(time.Hour), svc)
	ctx := context.Background()

	pending, err := console.Prompt(ctx, admin, &PromptRequest{Kind: CommandSetPreorder})
	require.NoError(t, err)
	assert.Equal(t, string(CommandSetPreorder), pending.Kind)

	result, err := console.Submit(ctx, admin, "2 500")
	require.NoError(t, err)
	assert.Equal(t, CommandSetPreorder, result.Command.Kind)

	value, _, err := store.GetSetting(ctx, models.SettingPreorderMarkupAmount)
	require.NoError(t, err)
	assert.Equal(t, "2500", value)

	pending, err = console.Pending(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, pending)

	// With nothing pending a bare number is the standard markup again.
	_, err = console.Submit(ctx, admin, "300")
	require.NoError(t, err)
	value, _, err = store.GetSetting(ctx, models.SettingMarkupAmount)
	require.NoError(t, err)
	assert.Equal(t, "300", value)
}

func TestPromptForUserKeepsPendingOnRangeError(t *testing.T) {
	svc, _ := newPricingService(t, markup.NewAmountPolicy())
	console := NewAdminConsole(session.NewMemoryStore(time.Hour), svc)
	ctx := context.Background()

	_, err := console.Prompt(ctx, admin, &PromptRequest{Kind: CommandSetUser})
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = console.Prompt(ctx, admin, &PromptRequest{Kind: CommandSetUser, UserID: 42})
	require.NoError(t, err)

	var rangeErr *RangeError
	_, err = console.Submit(ctx, admin, "5000000")
	assert.ErrorAs(t, err, &rangeErr)

	pending, err := console.Pending(ctx, admin)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, int64(42), pending.UserID)

	// Other commands pass through without touching the prompt.
	result, err := console.Submit(ctx, admin, "list")
	require.NoError(t, err)
	assert.Empty(t, result.Overrides)

	_, err = console.Submit(ctx, admin, "-150")
	require.NoError(t, err)
	amount, err := svc.GetUserMarkup(ctx, 42)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-150).Equal(amount))
}

func TestCancelPrompt(t *testing.T) {
	svc, _ := newPricingService(t, markup.NewAmountPolicy())
	console := NewAdminConsole(session.NewMemoryStore(time.Hour), svc)
	ctx := context.Background()

	cancelled, err := console.Cancel(ctx, admin)
	require.NoError(t, err)
	assert.False(t, cancelled)

	_, err = console.Prompt(ctx, admin, &PromptRequest{Kind: CommandSetGlobal})
	require.NoError(t, err)

	cancelled, err = console.Cancel(ctx, admin)
	require.NoError(t, err)
	assert.True(t, cancelled)
}
