package report

import (
	"fmt"
	"strings"
	"time"

	"rendiconto/internal/core"
)

// Subject builds the report mail subject for a summary.
func Subject(s core.Summary) string {
	return fmt.Sprintf("Financial report %s %d", s.PeriodLabel, s.Year)
}

// ComposeBody renders the plain-text mail body: run timestamp, period,
// grand total and distinct merchant count.
func ComposeBody(now time.Time, s core.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report generated on %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Period: %s %d\n", s.PeriodLabel, s.Year)
	fmt.Fprintf(&b, "Total spent: $ %s\n", core.FormatAmount(s.Total))
	fmt.Fprintf(&b, "Distinct merchants: %d\n", s.DistinctMerchants())
	b.WriteString("\nThe full report is attached as PDF.\n")
	return b.String()
}

// Compose assembles the full email for a snapshot and rendered document.
func Compose(now time.Time, snap *core.ReportSnapshot, doc Document, to string, cc []string, fromName string) Email {
	return Email{
		To:         to,
		CC:         cc,
		FromName:   fromName,
		Subject:    Subject(snap.Summary),
		Body:       ComposeBody(now, snap.Summary),
		Attachment: doc,
	}
}
