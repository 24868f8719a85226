package pipeline

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"rendiconto/internal/categorize"
	"rendiconto/internal/core"
	mailmem "rendiconto/internal/mail/memory"
	"rendiconto/internal/parser"
	reportmem "rendiconto/internal/report/memory"
	sheetmem "rendiconto/internal/sheets/memory"
)

type fixture struct {
	source *mailmem.Source
	sink   *sheetmem.Store
	render *reportmem.Renderer
	mailer *reportmem.Mailer
	deps   Deps
	opts   Options
	window Window
}

func newFixture(t *testing.T, messages ...core.RawMessage) *fixture {
	t.Helper()
	p, err := parser.Lookup("debitcard")
	if err != nil {
		t.Fatalf("lookup parser: %v", err)
	}
	f := &fixture{
		source: mailmem.New(messages...),
		sink:   sheetmem.New(categorize.NewConstant("Variable expense")),
		render: reportmem.NewRenderer(),
		mailer: reportmem.NewMailer(),
	}
	f.deps = Deps{
		Source:   f.source,
		Parser:   p,
		Sink:     f.sink,
		Renderer: f.render,
		Mailer:   f.mailer,
	}
	f.opts = Options{
		Query:      "from:bank",
		Recipient:  "owner@example.com",
		SenderName: "Reporting Bot",
		Now: func() time.Time {
			return time.Date(2025, time.October, 1, 7, 0, 0, 0, time.UTC)
		},
	}
	f.window = WindowFor(2025, time.September, time.UTC)
	return f
}

func msg(day int, body string) core.RawMessage {
	return core.RawMessage{
		Body:       body,
		ReceivedAt: time.Date(2025, time.September, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestRunEndToEnd(t *testing.T) {
	f := newFixture(t,
		msg(20, "You purchased $120.500,50 at CAFE with debit card ending 1111"),
		msg(5, "You purchased $50.000,00 at SUPERMARKET with debit card ending 1111"),
		msg(12, "Your statement for August is ready."),
	)

	res, err := Run(context.Background(), f.window, f.opts, f.deps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Outcome != OutcomeCompleted {
		t.Fatalf("outcome: %s", res.Outcome)
	}
	if res.Scanned != 3 || res.Skipped != 1 {
		t.Fatalf("scanned=%d skipped=%d", res.Scanned, res.Skipped)
	}

	snap := res.Snapshot
	if len(snap.Transactions) != 2 {
		t.Fatalf("transactions: %d", len(snap.Transactions))
	}
	if snap.Transactions[0].Merchant != "SUPERMARKET" || snap.Transactions[1].Merchant != "CAFE" {
		t.Fatalf("expected date order, got %v", snap.Transactions)
	}
	if got := snap.Summary.Total.String(); got != "170500.5" {
		t.Fatalf("total: %s", got)
	}
	if got := snap.Summary.Categories["SUPERMARKET"].String(); got != "50000" {
		t.Fatalf("SUPERMARKET: %s", got)
	}
	if got := snap.Summary.Categories["CAFE"].String(); got != "120500.5" {
		t.Fatalf("CAFE: %s", got)
	}
	if snap.Summary.PeriodLabel != "SEPTEMBER" || snap.Summary.Year != 2025 {
		t.Fatalf("summary header: %+v", snap.Summary)
	}

	if f.sink.Overwrites() != 1 {
		t.Fatalf("sink overwrites: %d", f.sink.Overwrites())
	}
	sent := f.mailer.Sent()
	if len(sent) != 1 {
		t.Fatalf("mails sent: %d", len(sent))
	}
	if sent[0].Attachment.Filename != "Financial_Report_SEPTEMBER_2025.pdf" {
		t.Fatalf("attachment: %q", sent[0].Attachment.Filename)
	}
	if !strings.Contains(sent[0].Body, "Total spent: $ 170.500,50") {
		t.Fatalf("mail body:\n%s", sent[0].Body)
	}
}

func TestRunEmptyWindowShortCircuits(t *testing.T) {
	f := newFixture(t,
		msg(3, "Password changed successfully."),
	)

	res, err := Run(context.Background(), f.window, f.opts, f.deps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Outcome != OutcomeNoData {
		t.Fatalf("outcome: %s", res.Outcome)
	}
	if res.Snapshot != nil {
		t.Fatal("no snapshot expected")
	}
	if f.sink.Overwrites() != 0 {
		t.Fatal("sink must not be touched on empty window")
	}
	if f.render.Renders() != 0 {
		t.Fatal("renderer must not be touched on empty window")
	}
	if len(f.mailer.Sent()) != 0 {
		t.Fatal("no mail expected on empty window")
	}
}

func TestRunIdempotent(t *testing.T) {
	f := newFixture(t,
		msg(5, "purchased $50.000,00 at SUPERMARKET with debit card"),
		msg(20, "purchased $120.500,50 at CAFE with debit card"),
	)

	first, err := Run(context.Background(), f.window, f.opts, f.deps)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	gridAfterFirst := f.sink.Grid()

	second, err := Run(context.Background(), f.window, f.opts, f.deps)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first.Snapshot, second.Snapshot) {
		t.Fatal("snapshots differ between identical runs")
	}
	if !reflect.DeepEqual(gridAfterFirst, f.sink.Grid()) {
		t.Fatal("sheet grid differs between identical runs")
	}
	if f.sink.Overwrites() != 2 {
		t.Fatalf("expected 2 overwrites, got %d", f.sink.Overwrites())
	}
}

func TestRunSkipsBadAmountAndEmptyMerchant(t *testing.T) {
	f := newFixture(t,
		// No decimal comma: normalization policy rejects whole numbers.
		msg(2, "purchased $50 at KIOSK with debit card"),
		msg(4, "purchased $10,00 at SHOP with debit card"),
	)

	res, err := Run(context.Background(), f.window, f.opts, f.deps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Outcome != OutcomeCompleted {
		t.Fatalf("outcome: %s", res.Outcome)
	}
	if res.Skipped != 1 {
		t.Fatalf("skipped: %d", res.Skipped)
	}
	if len(res.Snapshot.Transactions) != 1 || res.Snapshot.Transactions[0].Merchant != "SHOP" {
		t.Fatalf("transactions: %v", res.Snapshot.Transactions)
	}
}

func TestMonthWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	ref := time.Date(2025, time.September, 15, 23, 30, 0, 0, time.UTC)
	w := MonthWindow(ref, loc)

	if w.Year != 2025 || w.Month != time.September {
		t.Fatalf("window: %+v", w)
	}
	if w.Start.Day() != 1 || w.Start.Hour() != 0 {
		t.Fatalf("start: %v", w.Start)
	}
	if w.End.Month() != time.October || w.End.Day() != 1 {
		t.Fatalf("end: %v", w.End)
	}
	if w.Start.Location() != loc {
		t.Fatal("window not anchored to configured timezone")
	}
}
