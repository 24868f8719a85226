// Command rendiconto-worker keeps the report pipeline running: it fires on
// the configured day of month and on AMQP run triggers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rendiconto/internal/amqp"
	"rendiconto/internal/backend"
	"rendiconto/internal/cli"
	"rendiconto/internal/parser"
	"rendiconto/internal/pipeline"
	"rendiconto/internal/worker"
)

func main() {
	logger := cli.Setup("rendiconto-worker")
	cfg := cli.LoadAndValidateConfig(logger)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	p, err := parser.Lookup(cfg.ParserName)
	if err != nil {
		logger.Error("Parser not found", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := backend.Build(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}

	journal := cli.InitJournal(logger, cfg.SQLiteDBPath)
	defer journal.Close()

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled, running on schedule only")
	}

	runner := func(ctx context.Context, window pipeline.Window) (pipeline.Result, error) {
		return pipeline.Run(ctx, window, pipeline.Options{
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
	}

	w := worker.New(journal, amqpClient, runner, loc, cfg.RunDay, cfg.CheckInterval)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Worker started",
		"run_day", cfg.RunDay,
		"check_interval", cfg.CheckInterval.String(),
		"timezone", cfg.Timezone)

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
