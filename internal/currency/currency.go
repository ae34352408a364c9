// Package currency converts extracted prices into the configured base currency.
package currency

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	iso "golang.org/x/text/currency"
)

// ErrUnknownCurrency is returned for codes that are malformed or absent from the rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// basePlaces is the number of decimal places kept in converted amounts.
const basePlaces = 2

// Normalizer converts amounts into the base currency using a fixed rate table.
// It is safe for concurrent use; the table is never mutated after construction.
type Normalizer struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewNormalizer builds a Normalizer. Each rate is the price of one unit of the keyed
// currency expressed in the base currency. The base currency always has rate 1.
func NewNormalizer(base string, rates map[string]decimal.Decimal) (*Normalizer, error) {
	const opn = "currency.NewNormalizer"

	baseCode, err := parseCode(base)
	if err != nil {
		return nil, fmt.Errorf("%s: base currency: %w", opn, err)
	}

	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		unit, err := parseCode(code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opn, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%s: rate for %s must be positive, got %s", opn, unit, rate)
		}
		table[unit] = rate
	}
	table[baseCode] = decimal.NewFromInt(1)

	return &Normalizer{base: baseCode, rates: table}, nil
}

// Base returns the ISO code of the base currency.
func (n *Normalizer) Base() string {
	return n.base
}

// Codes returns the supported currency codes in sorted order.
func (n *Normalizer) Codes() []string {
	codes := make([]string, 0, len(n.rates))
	for code := range n.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ToBase converts amount in the given currency to the base currency.
func (n *Normalizer) ToBase(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	unit, err := parseCode(code)
	if err != nil {
		return decimal.Zero, err
	}

	rate, found := n.rates[unit]
	if !found {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, unit)
	}

	return amount.Mul(rate).Round(basePlaces), nil
}

// parseCode validates an ISO 4217 code and returns its canonical upper-case form.
func parseCode(code string) (string, error) {
	unit, err := iso.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return unit.String(), nil
}
