package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("VAT_RATE", "0.21")
	t.Setenv("LISTING_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://targ.ro, https://admin.targ.ro")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 0.21, cfg.VATRate)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
	assert.Equal(t, []string{"https://targ.ro", "https://admin.targ.ro"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 14, cfg.InvoiceDueDays)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("INVOICE_DUE_DAYS", "two weeks")
	t.Setenv("VAT_RATE", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.InvoiceDueDays)
	assert.Equal(t, 0.19, cfg.VATRate)
}
