// Package report renders and distributes the monthly report.
package report

import (
	"context"
	"fmt"

	"rendiconto/internal/core"
)

type (
	// Document is a rendered report ready to attach.
	Document struct {
		Filename string
		MimeType string
		Content  []byte
	}

	// Email is a fully composed report mail.
	Email struct {
		To         string
		CC         []string
		FromName   string
		Subject    string
		Body       string
		Attachment Document
	}
)

// Renderer produces the PDF document for a snapshot. It reflects the sheet
// state written just before, so rendering must happen after the overwrite.
type Renderer interface {
	Render(ctx context.Context, snap *core.ReportSnapshot) (Document, error)
}

// Mailer delivers the composed report mail.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// DocumentName builds the report filename, e.g.
// "Financial_Report_SEPTEMBER_2025.pdf".
func DocumentName(s core.Summary) string {
	return fmt.Sprintf("Financial_Report_%s_%d.pdf", s.PeriodLabel, s.Year)
}
