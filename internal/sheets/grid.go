package sheets

import (
	"time"

	"rendiconto/internal/categorize"
	"rendiconto/internal/core"
)

const dateLayout = "2006-01-02 15:04:05"

// HeaderRow is the first row of every snapshot sheet.
var HeaderRow = []any{"DATE", "MERCHANT", "AMOUNT", "CATEGORY"}

// BuildGrid renders a snapshot as the cell grid written to the sheet:
// header, one row per transaction, a spacer, then the KPI block. All sink
// implementations share this so the sheet shape is identical everywhere.
func BuildGrid(snap *core.ReportSnapshot, cat categorize.Categorizer) [][]any {
	grid := make([][]any, 0, len(snap.Transactions)+4)
	grid = append(grid, HeaderRow)
	for _, tx := range snap.Transactions {
		grid = append(grid, []any{
			tx.Date.Format(dateLayout),
			tx.Merchant,
			"$ " + core.FormatAmount(tx.Amount),
			cat.Categorize(tx.Merchant),
		})
	}
	grid = append(grid,
		[]any{},
		[]any{"TOTAL", "$ " + core.FormatAmount(snap.Summary.Total)},
		[]any{"MERCHANTS", snap.Summary.DistinctMerchants()},
	)
	return grid
}

// FormatDate exposes the sheet's timestamp layout for reuse in reports.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
