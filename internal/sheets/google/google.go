// Package google implements the snapshot sink on the Google Sheets API.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"rendiconto/internal/categorize"
	"rendiconto/internal/core"
	"rendiconto/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	cat           categorize.Categorizer
}

var _ sheets.SnapshotWriter = (*Client)(nil)

func New(ctx context.Context, spreadsheetID, sheetName string, cat categorize.Categorizer, opts ...goption.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		return nil, errors.New("missing sheet name")
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		cat:           cat,
	}, nil
}

// Overwrite clears the configured sheet and writes the snapshot grid in a
// single update. The clear makes re-runs for the same window idempotent.
func (c *Client) Overwrite(ctx context.Context, snap *core.ReportSnapshot) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:Z", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	grid := sheets.BuildGrid(snap, c.cat)
	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: grid}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write snapshot to %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Snapshot written to sheet",
		"sheet", c.sheetName,
		"rows", len(grid),
		"transactions", len(snap.Transactions))

	return nil
}
