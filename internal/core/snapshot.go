package core

import (
	"strings"
	"time"
)

// BuildSnapshot assembles the immutable report payload for the given
// calendar month. It returns ok=false when the aggregation holds no
// transactions; the caller must then stop without touching any sink.
func BuildSnapshot(agg Aggregation, year int, month time.Month) (*ReportSnapshot, bool) {
	if len(agg.Transactions) == 0 {
		return nil, false
	}
	return &ReportSnapshot{
		Transactions: agg.Transactions,
		Summary: Summary{
			Total:       agg.Total,
			Categories:  agg.Categories,
			PeriodLabel: PeriodLabel(month),
			Year:        year,
		},
	}, true
}

// PeriodLabel is the upper-cased full month name, e.g. "SEPTEMBER".
func PeriodLabel(month time.Month) string {
	return strings.ToUpper(month.String())
}
