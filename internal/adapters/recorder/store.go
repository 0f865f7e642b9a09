// Package recorder persists decision records and exposes aggregate views.
//
// Persistence is best-effort by design: a slow or absent store degrades
// recording, never decisioning. The async writer adapts the bounded-queue
// discipline used elsewhere in this codebase to the write path.
package recorder

import (
	"context"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Store is the append-only decision log. Records are never updated or
// deleted; aggregate views are recomputed from the full log on every read.
type Store interface {
	// Append persists one record and returns its assigned ID.
	Append(ctx context.Context, rec model.DecisionRecord) (string, error)

	// Recent returns up to limit records, most recent first. Repeated calls
	// re-read current state; there is no cursor.
	Recent(ctx context.Context, limit int) ([]model.DecisionRecord, error)

	// Stats computes aggregate statistics fresh from the full log.
	Stats(ctx context.Context) (model.AggregateStats, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
