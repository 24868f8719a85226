// Package sheets defines the outbound port for the tabular snapshot sink.
package sheets

import (
	"context"

	"rendiconto/internal/core"
)

// SnapshotWriter replaces the full contents of the report sheet with the
// given snapshot. Overwrite is clear-then-write so repeated runs for the
// same window converge instead of accumulating duplicates.
type SnapshotWriter interface {
	Overwrite(ctx context.Context, snap *core.ReportSnapshot) error
}
