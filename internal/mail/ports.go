// Package mail defines the inbound port for notification messages.
package mail

import (
	"context"
	"time"

	"rendiconto/internal/core"
)

// Source supplies raw notification bodies for a search query within a time
// window. Implementations own the messages; the pipeline only reads them.
type Source interface {
	// Search returns every message matching query received in
	// [after, before). Order is unspecified.
	Search(ctx context.Context, query string, after, before time.Time) ([]core.RawMessage, error)
}
