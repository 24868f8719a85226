// Package backend wires the pipeline's external collaborators from
// configuration: live Google services for real runs, in-memory fakes for
// dry runs.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"rendiconto/internal/categorize"
	"rendiconto/internal/config"
	"rendiconto/internal/mail"
	gmailsource "rendiconto/internal/mail/gmail"
	mailmem "rendiconto/internal/mail/memory"
	"rendiconto/internal/report"
	drivepdf "rendiconto/internal/report/drive"
	gmailsend "rendiconto/internal/report/gmail"
	reportmem "rendiconto/internal/report/memory"
	"rendiconto/internal/sheets"
	sheetsgoogle "rendiconto/internal/sheets/google"
	sheetmem "rendiconto/internal/sheets/memory"
)

// Result bundles the collaborators of one pipeline run.
type Result struct {
	Source   mail.Source
	Sink     sheets.SnapshotWriter
	Renderer report.Renderer
	Mailer   report.Mailer

	// MemorySink is set for the memory backend so callers can inspect
	// the written grid after a dry run.
	MemorySink *sheetmem.Store
}

// Build creates the collaborators for the configured backend.
func Build(ctx context.Context, cfg *config.Config) (*Result, error) {
	cat := categorize.NewConstant(cfg.CategoryLabel)

	switch cfg.Backend {
	case "google":
		return buildGoogle(ctx, cfg, cat)
	case "memory":
		return buildMemory(ctx, cfg, cat)
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

func buildGoogle(ctx context.Context, cfg *config.Config, cat categorize.Categorizer) (*Result, error) {
	opts, err := googleOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}

	source, err := gmailsource.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail source: %w", err)
	}
	sink, err := sheetsgoogle.New(ctx, cfg.SpreadsheetID, cfg.SheetName, cat, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets sink: %w", err)
	}
	renderer, err := drivepdf.New(ctx, cfg.SpreadsheetID, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive renderer: %w", err)
	}
	mailer, err := gmailsend.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail mailer: %w", err)
	}

	slog.InfoContext(ctx, "Initialized google backend",
		"spreadsheet_id", cfg.SpreadsheetID,
		"sheet", cfg.SheetName)

	return &Result{Source: source, Sink: sink, Renderer: renderer, Mailer: mailer}, nil
}

func buildMemory(ctx context.Context, cfg *config.Config, cat categorize.Categorizer) (*Result, error) {
	var source *mailmem.Source
	if cfg.MessagesFile != "" {
		var err error
		source, err = mailmem.NewFromFile(cfg.MessagesFile)
		if err != nil {
			return nil, fmt.Errorf("load inbox fixture: %w", err)
		}
	} else {
		source = mailmem.New()
	}

	sink := sheetmem.New(cat)

	slog.InfoContext(ctx, "Initialized memory backend",
		"messages_file", cfg.MessagesFile)

	return &Result{
		Source:     source,
		Sink:       sink,
		Renderer:   reportmem.NewRenderer(),
		Mailer:     reportmem.NewMailer(),
		MemorySink: sink,
	}, nil
}
