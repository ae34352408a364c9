package main

import (
	"testing"

	"github.com/Houeta/price-refresh/internal/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env        string
		debug      bool
		warnOnly   bool
		errorsOnly bool
	}{
		{env: envLocal, debug: true},
		{env: envDev},
		{env: envProd, warnOnly: true},
		{env: "staging", errorsOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()

			log := setupLogger(tt.env)
			ctx := t.Context()

			assert.Equal(t, tt.debug, log.Handler().Enabled(ctx, -4))
			assert.Equal(t, !tt.warnOnly && !tt.errorsOnly, log.Handler().Enabled(ctx, 0))
			assert.Equal(t, !tt.errorsOnly, log.Handler().Enabled(ctx, 4))
		})
	}
}

func TestCheckFallbackCurrency(t *testing.T) {
	t.Parallel()

	normalizer, err := currency.NewNormalizer("INR", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("90.1"),
	})
	require.NoError(t, err)

	require.NoError(t, checkFallbackCurrency(normalizer, "INR"))
	require.NoError(t, checkFallbackCurrency(normalizer, "EUR"))

	err = checkFallbackCurrency(normalizer, "USD")
	require.ErrorIs(t, err, currency.ErrUnknownCurrency)
	assert.Contains(t, err.Error(), "USD has no configured rate")
}
