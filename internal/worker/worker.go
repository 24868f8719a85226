// Package worker runs the report pipeline on a monthly schedule and on
// demand via AMQP triggers.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"rendiconto/internal/amqp"
	"rendiconto/internal/pipeline"
	"rendiconto/internal/storage"
)

// Runner executes one pipeline pass for a window. Injected so tests can
// observe scheduling without wiring real sinks.
type Runner func(ctx context.Context, window pipeline.Window) (pipeline.Result, error)

type ReportWorker struct {
	journal  *storage.SQLiteRepository
	client   *amqp.Client // nil when AMQP is not configured
	runner   Runner
	loc      *time.Location
	runDay   int
	interval time.Duration
}

func New(journal *storage.SQLiteRepository, client *amqp.Client, runner Runner, loc *time.Location, runDay int, interval time.Duration) *ReportWorker {
	return &ReportWorker{
		journal:  journal,
		client:   client,
		runner:   runner,
		loc:      loc,
		runDay:   runDay,
		interval: interval,
	}
}

// Start blocks until ctx is cancelled or a loop fails. The trigger consumer
// and the scheduler run concurrently; a failure in either stops both.
func (w *ReportWorker) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if w.client != nil {
		g.Go(func() error {
			err := w.client.ConsumeTriggers(ctx, w.HandleTrigger)
			if err == context.Canceled {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		// Catch up immediately in case the process was down on run day.
		if _, err := w.RunIfDue(ctx, time.Now()); err != nil {
			slog.ErrorContext(ctx, "Scheduled run failed", "error", err)
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if _, err := w.RunIfDue(ctx, time.Now()); err != nil {
					// The next tick retries; external faults are transient.
					slog.ErrorContext(ctx, "Scheduled run failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleTrigger runs the pipeline for the requested period, or the current
// month when the trigger leaves it empty. Manual triggers bypass the
// journal check: re-running is idempotent by design.
func (w *ReportWorker) HandleTrigger(ctx context.Context, msg *amqp.RunTriggerMessage) error {
	var window pipeline.Window
	if msg.Year != 0 && msg.Month != 0 {
		window = pipeline.WindowFor(msg.Year, time.Month(msg.Month), w.loc)
	} else {
		window = pipeline.MonthWindow(time.Now(), w.loc)
	}

	slog.InfoContext(ctx, "Running pipeline on trigger",
		"window", window.String(),
		"requested_by", msg.RequestedBy)

	_, err := w.execute(ctx, window)
	return err
}

// RunIfDue fires the pipeline for the current month when the run day has
// arrived and the journal shows no completed run yet. It reports whether a
// run was attempted.
func (w *ReportWorker) RunIfDue(ctx context.Context, now time.Time) (bool, error) {
	local := now.In(w.loc)
	if local.Day() < w.runDay {
		return false, nil
	}

	window := pipeline.MonthWindow(now, w.loc)
	last, err := w.journal.LastCompletedRun(ctx, window.Year, window.Month)
	if err != nil {
		return false, fmt.Errorf("check run journal: %w", err)
	}
	if last != nil {
		return false, nil
	}

	slog.InfoContext(ctx, "Run day reached, starting scheduled run",
		"window", window.String(),
		"run_day", w.runDay)

	_, err = w.execute(ctx, window)
	return true, err
}

func (w *ReportWorker) execute(ctx context.Context, window pipeline.Window) (pipeline.Result, error) {
	res, runErr := w.runner(ctx, window)

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

	recorded, err := w.journal.RecordRun(ctx, entry)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to record run in journal", "error", err)
	}
	if runErr != nil {
		return res, runErr
	}

	if w.client != nil {
		completed := &amqp.RunCompletedMessage{
			RunID:        recorded.ID,
			Year:         window.Year,
			Month:        int(window.Month),
			Outcome:      string(res.Outcome),
			Transactions: entry.Transactions,
			Total:        entry.Total,
		}
		if err := w.client.PublishRunCompleted(ctx, completed); err != nil {
			// The run itself succeeded; listeners just miss one event.
			slog.WarnContext(ctx, "Failed to publish run completed event", "error", err)
		}
	}

	return res, nil
}
