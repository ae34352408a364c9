package currency_test

import (
	"testing"

	"github.com/Houeta/price-refresh/internal/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer(t *testing.T) *currency.Normalizer {
	t.Helper()

	n, err := currency.NewNormalizer("INR", map[string]decimal.Decimal{
		"usd": decimal.RequireFromString("83.25"),
		"EUR": decimal.RequireFromString("90.10"),
	})
	require.NoError(t, err)

	return n
}

func TestNewNormalizer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		n := newNormalizer(t)

		assert.Equal(t, "INR", n.Base())
		assert.Equal(t, []string{"EUR", "INR", "USD"}, n.Codes())
	})

	t.Run("error: invalid base", func(t *testing.T) {
		_, err := currency.NewNormalizer("rupees", nil)

		require.ErrorIs(t, err, currency.ErrUnknownCurrency)
		require.ErrorContains(t, err, "currency.NewNormalizer")
	})

	t.Run("error: invalid rate code", func(t *testing.T) {
		_, err := currency.NewNormalizer("INR", map[string]decimal.Decimal{"XX": decimal.NewFromInt(1)})

		require.ErrorIs(t, err, currency.ErrUnknownCurrency)
	})

	t.Run("error: non positive rate", func(t *testing.T) {
		_, err := currency.NewNormalizer("INR", map[string]decimal.Decimal{"USD": decimal.Zero})

		require.ErrorContains(t, err, "must be positive")
	})
}

func TestToBase(t *testing.T) {
	n := newNormalizer(t)

	testCases := []struct {
		name     string
		amount   string
		code     string
		expected string
	}{
		{name: "base currency is identity", amount: "999", code: "INR", expected: "999"},
		{name: "lower case code", amount: "999", code: "inr", expected: "999"},
		{name: "converted", amount: "10", code: "USD", expected: "832.5"},
		{name: "rounded to two places", amount: "1.333", code: "EUR", expected: "120.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := n.ToBase(decimal.RequireFromString(tc.amount), tc.code)

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}

	t.Run("error: recognised but unsupported code", func(t *testing.T) {
		_, err := n.ToBase(decimal.NewFromInt(1), "JPY")

		require.ErrorIs(t, err, currency.ErrUnknownCurrency)
		require.ErrorContains(t, err, "JPY")
	})

	t.Run("error: malformed code", func(t *testing.T) {
		_, err := n.ToBase(decimal.NewFromInt(1), "")

		require.ErrorIs(t, err, currency.ErrUnknownCurrency)
	})
}
