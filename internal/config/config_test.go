// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 10.0, cfg.Checkout.ShippingFee)
	assert.Equal(t, 50.0, cfg.Checkout.FreeShippingAbove)
	assert.Equal(t, 0.08, cfg.Checkout.TaxRate)
	assert.True(t, cfg.Database.SeedCatalog)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_SEED_CATALOG", "false")
	t.Setenv("CHECKOUT_TAX_RATE", "0.18")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Database.SeedCatalog)
	assert.Equal(t, 0.18, cfg.Checkout.TaxRate)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DB_PASSWORD", "a-real-password")

	// Razorpay credentials are mandatory in production.
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RAZORPAY_KEY_ID", "rzp_live_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_live_secret")
	_, err = Load()
	assert.NoError(t, err)
}
