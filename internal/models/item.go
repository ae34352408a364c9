package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackedItem is one (owner, product) binding to a monitored URL.
type TrackedItem struct {
	ID                   string
	OwnerID              string
	ProductID            string // ProductID is empty until the item joins a product grouping.
	Name                 string
	URL                  string // URL is the raw, user-entered address.
	LastKnownPriceNative decimal.Decimal
	LastKnownPriceBase   decimal.Decimal
	CurrencyCode         string
	UpdatedAt            time.Time
}

// PriceHistoryEntry is an append-only record of an observed price change.
type PriceHistoryEntry struct {
	TrackedItemID string
	PriceNative   decimal.Decimal
	CurrencyCode  string
	PriceBase     decimal.Decimal
	RecordedAt    time.Time
}

// Quote is the result of a single price extraction.
type Quote struct {
	Price decimal.Decimal
	// CurrencyCode is empty when the page did not state a currency.
	CurrencyCode string
}

// CurrencyOr returns the extracted currency code, or fallback when none was extracted.
func (q Quote) CurrencyOr(fallback string) string {
	if q.CurrencyCode == "" {
		return fallback
	}
	return q.CurrencyCode
}
