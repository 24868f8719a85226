package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// RawMessage is a notification body together with the timestamp the
	// inbox recorded for it. The core only reads it.
	RawMessage struct {
		Body       string
		ReceivedAt time.Time
	}

	// Transaction is one parsed debit-card purchase. Immutable once built.
	Transaction struct {
		Date     time.Time
		Merchant string
		Amount   decimal.Decimal
	}

	// CategoryTotals maps a merchant name to its accumulated amount.
	// Iteration order is undefined; only the key set and values matter.
	CategoryTotals map[string]decimal.Decimal

	// Summary holds the aggregate figures for one reporting window.
	Summary struct {
		Total       decimal.Decimal
		Categories  CategoryTotals
		PeriodLabel string
		Year        int
	}

	// ReportSnapshot is the complete output of one pipeline run:
	// transactions sorted ascending by date plus the derived summary.
	ReportSnapshot struct {
		Transactions []Transaction
		Summary      Summary
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyMerchant = errors.New("empty merchant")
	ErrZeroDate      = errors.New("date cannot be zero")
)

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(t.Merchant) == "" {
		return ErrEmptyMerchant
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeMerchant trims surrounding whitespace. A merchant that is empty
// after trimming invalidates the whole transaction. No further cleanup is
// applied: merchants differing by case or internal whitespace stay distinct
// aggregation keys.
func NormalizeMerchant(raw string) (string, error) {
	m := strings.TrimSpace(raw)
	if m == "" {
		return "", ErrEmptyMerchant
	}
	return m, nil
}

// DistinctMerchants returns the number of distinct aggregation keys.
func (s Summary) DistinctMerchants() int {
	return len(s.Categories)
}
