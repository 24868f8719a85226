// Command rendiconto runs one report pass for the current month (or an
// explicit period) and exits. It is meant to be invoked by cron; a window
// with no transactions is a successful no-op.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"rendiconto/internal/backend"
	"rendiconto/internal/cli"
	"rendiconto/internal/parser"
	"rendiconto/internal/pipeline"
	"rendiconto/internal/storage"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "use in-memory sinks instead of Google services")
	period := flag.String("period", "", "report period as YYYY-MM (default: current month)")
	flag.Parse()

	logger := cli.Setup("rendiconto")
	cfg := cli.LoadAndValidateConfig(logger)
	if *dryRun {
		cfg.Backend = "memory"
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	var window pipeline.Window
	if *period != "" {
		ref, err := time.ParseInLocation("2006-01", *period, loc)
		if err != nil {
			logger.Error("Invalid period, expected YYYY-MM", "period", *period, "error", err)
			os.Exit(1)
		}
		window = pipeline.WindowFor(ref.Year(), ref.Month(), loc)
	} else {
		window = pipeline.MonthWindow(time.Now(), loc)
	}

	p, err := parser.Lookup(cfg.ParserName)
	if err != nil {
		logger.Error("Parser not found", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	deps, err := backend.Build(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}

	journal := cli.InitJournal(logger, cfg.SQLiteDBPath)
	defer journal.Close()

	logger.Info("Starting report run",
		"window", window.String(),
		"backend", cfg.Backend,
		"parser", cfg.ParserName)

	res, runErr := pipeline.Run(ctx, window, pipeline.Options{
		Query:      cfg.SearchQuery,
		Recipient:  cfg.Recipient,
		CC:         cfg.CC,
		SenderName: cfg.SenderName,
	}, pipeline.Deps{
		Source:   deps.Source,
		Parser:   p,
		Sink:     deps.Sink,
		Renderer: deps.Renderer,
		Mailer:   deps.Mailer,
	})

	entry := storage.Run{
		Year:        window.Year,
		Month:       window.Month,
		WindowStart: window.Start,
		WindowEnd:   window.End,
		Outcome:     string(res.Outcome),
		Scanned:     res.Scanned,
		Skipped:     res.Skipped,
		Total:       "0",
	}
	if runErr != nil {
		entry.Outcome = "failed"
	}
	if res.Snapshot != nil {
		entry.Transactions = len(res.Snapshot.Transactions)
		entry.Total = res.Snapshot.Summary.Total.String()
	}
	if _, err := journal.RecordRun(ctx, entry); err != nil {
		logger.Error("Failed to record run in journal", "error", err)
	}

	if runErr != nil {
		logger.Error("Report run failed", "error", runErr, "window", window.String())
		os.Exit(1)
	}

	switch res.Outcome {
	case pipeline.OutcomeNoData:
		logger.Info("No transactions found, nothing to report", "window", window.String())
	default:
		logger.Info("Report run completed",
			"window", window.String(),
			"transactions", entry.Transactions,
			"total", entry.Total)
		if deps.MemorySink != nil {
			fmt.Printf("dry run wrote %d rows to the in-memory sheet\n", len(deps.MemorySink.Grid()))
		}
	}
}
