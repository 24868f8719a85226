// Package pipeline orchestrates one report run: search the inbox, parse and
// normalize notifications, aggregate, then hand the snapshot to the sinks.
// The run is a single synchronous pass; all blocking I/O lives behind the
// injected ports.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rendiconto/internal/core"
	"rendiconto/internal/mail"
	"rendiconto/internal/parser"
	"rendiconto/internal/report"
	"rendiconto/internal/sheets"
)

// Outcome classifies how a run ended. Both values are success states; an
// empty window is terminal success, not an error.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeNoData    Outcome = "no_data"
)

type (
	// Deps are the external collaborators of one run.
	Deps struct {
		Source   mail.Source
		Parser   parser.Parser
		Sink     sheets.SnapshotWriter
		Renderer report.Renderer
		Mailer   report.Mailer
	}

	// Options carry the per-run configuration, threaded through as an
	// immutable value rather than read from ambient state.
	Options struct {
		Query      string
		Recipient  string
		CC         []string
		SenderName string
		// Now is injectable for tests; defaults to time.Now.
		Now func() time.Time
	}

	// Result reports what a run did.
	Result struct {
		Outcome  Outcome
		Window   Window
		Scanned  int
		Skipped  int
		Snapshot *core.ReportSnapshot
	}
)

// Run executes the pipeline for the given window. Messages that do not
// match the parser or fail normalization are skipped, never fatal. External
// call failures abort the run and propagate to the caller; the next
// scheduled trigger is the retry mechanism.
func Run(ctx context.Context, window Window, opts Options, deps Deps) (Result, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	res := Result{Window: window}

	messages, err := deps.Source.Search(ctx, opts.Query, window.Start, window.End)
	if err != nil {
		return res, fmt.Errorf("search messages: %w", err)
	}
	res.Scanned = len(messages)

	transactions := collect(ctx, messages, deps.Parser, &res)

	agg := core.Aggregate(transactions)
	snap, ok := core.BuildSnapshot(agg, window.Year, window.Month)
	if !ok {
		slog.InfoContext(ctx, "No transactions in window, skipping report",
			"window", window.String(),
			"scanned", res.Scanned)
		res.Outcome = OutcomeNoData
		return res, nil
	}
	res.Snapshot = snap

	if err := deps.Sink.Overwrite(ctx, snap); err != nil {
		return res, fmt.Errorf("overwrite snapshot sheet: %w", err)
	}

	doc, err := deps.Renderer.Render(ctx, snap)
	if err != nil {
		return res, fmt.Errorf("render report: %w", err)
	}

	email := report.Compose(now(), snap, doc, opts.Recipient, opts.CC, opts.SenderName)
	if err := deps.Mailer.Send(ctx, email); err != nil {
		return res, fmt.Errorf("send report: %w", err)
	}

	slog.InfoContext(ctx, "Report run completed",
		"window", window.String(),
		"scanned", res.Scanned,
		"transactions", len(snap.Transactions),
		"skipped", res.Skipped,
		"total", core.FormatAmount(snap.Summary.Total))

	res.Outcome = OutcomeCompleted
	return res, nil
}

// collect parses and normalizes the message list, counting skips.
func collect(ctx context.Context, messages []core.RawMessage, p parser.Parser, res *Result) []core.Transaction {
	var out []core.Transaction
	for _, msg := range messages {
		fields, ok := p.Parse(msg.Body)
		if !ok {
			// Unrelated inbox noise, not worth a log line.
			res.Skipped++
			continue
		}
		amount, err := core.NormalizeAmount(fields.Amount)
		if err != nil {
			slog.WarnContext(ctx, "Discarding match with unparsable amount",
				"raw_amount", fields.Amount,
				"received_at", msg.ReceivedAt)
			res.Skipped++
			continue
		}
		merchant, err := core.NormalizeMerchant(fields.Merchant)
		if err != nil {
			slog.WarnContext(ctx, "Discarding match with empty merchant",
				"received_at", msg.ReceivedAt)
			res.Skipped++
			continue
		}
		out = append(out, core.Transaction{
			Date:     msg.ReceivedAt,
			Merchant: merchant,
			Amount:   amount,
		})
	}
	return out
}
