package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregation is the result of folding a month's transactions: the sequence
// sorted ascending by date plus the running totals.
type Aggregation struct {
	Transactions []Transaction
	Total        decimal.Decimal
	Categories   CategoryTotals
}

// Aggregate sorts the transactions ascending by date (stable, so same-day
// transactions keep their discovery order) and folds per-merchant and grand
// totals. The input slice is not modified.
func Aggregate(txs []Transaction) Aggregation {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	agg := Aggregation{
		Transactions: sorted,
		Total:        decimal.Zero,
		Categories:   CategoryTotals{},
	}
	for _, tx := range sorted {
		agg.Total = agg.Total.Add(tx.Amount)
		prev, ok := agg.Categories[tx.Merchant]
		if !ok {
			prev = decimal.Zero
		}
		agg.Categories[tx.Merchant] = prev.Add(tx.Amount)
	}
	return agg
}
