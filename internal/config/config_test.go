// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADMIN_IDS", "101, 202,")
	t.Setenv("MARKUP_POLICY", "PERCENT")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("SESSION_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{101, 202}, cfg.Admin.IDs)
	assert.True(t, cfg.IsAdmin(202))
	assert.False(t, cfg.IsAdmin(303))
	assert.Equal(t, MarkupPolicyPercent, cfg.Markup.Policy)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Server.RateLimit)
	assert.Equal(t, 15, cfg.Redis.SessionTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ADMIN_IDS", "1,abc")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ADMIN_IDS", "1")
	t.Setenv("MARKUP_POLICY", "discount")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Database:    DatabaseConfig{Driver: "sqlite"},
		Markup:      MarkupConfig{Policy: MarkupPolicyAmount, LegacyMinBaseRatio: 0.1},
	}
	assert.Error(t, cfg.Validate(), "production needs admins")

	cfg.Admin.IDs = []int64{1}
	assert.NoError(t, cfg.Validate())

	cfg.Markup.LegacyMinBaseRatio = 1
	assert.Error(t, cfg.Validate())

	cfg.Markup.LegacyMinBaseRatio = 0.1
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}
