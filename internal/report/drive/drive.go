// Package drive renders the report by exporting the spreadsheet as PDF
// through the Google Drive API.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	driveapi "google.golang.org/api/drive/v3"
	goption "google.golang.org/api/option"

	"rendiconto/internal/core"
	"rendiconto/internal/report"
)

type Renderer struct {
	svc           *driveapi.Service
	spreadsheetID string
}

var _ report.Renderer = (*Renderer)(nil)

func New(ctx context.Context, spreadsheetID string, opts ...goption.ClientOption) (*Renderer, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := driveapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Renderer{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Render exports the spreadsheet as application/pdf. The export reflects
// whatever the sheet holds at call time, so the sink overwrite must have
// completed first. The bytes are sanity-checked before being returned.
func (r *Renderer) Render(ctx context.Context, snap *core.ReportSnapshot) (report.Document, error) {
	resp, err := r.svc.Files.Export(r.spreadsheetID, "application/pdf").Context(ctx).Download()
	if err != nil {
		return report.Document{}, fmt.Errorf("export spreadsheet as PDF: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return report.Document{}, fmt.Errorf("read PDF export: %w", err)
	}

	doc := report.Document{
		Filename: report.DocumentName(snap.Summary),
		MimeType: "application/pdf",
		Content:  content,
	}
	if err := report.ValidatePDF(doc); err != nil {
		return report.Document{}, fmt.Errorf("exported document failed validation: %w", err)
	}

	slog.InfoContext(ctx, "Report rendered",
		"filename", doc.Filename,
		"bytes", len(content))

	return doc, nil
}
