// Package transfer defines the boundary to the external synchronization
// primitive. The comparison engine decides what to hand over; the
// executor owns the actual byte copy and its per-option semantics.
package transfer

import (
	"context"
)

// Options mirror the flags the transfer primitive accepts. The engine
// passes them through without interpretation.
type Options struct {
	// Delete removes destination files absent from the source
	Delete bool
	// PreservePermissions keeps file mode bits
	PreservePermissions bool
	// PreserveTimes keeps modification times
	PreserveTimes bool
	// PreserveOwner keeps file ownership
	PreserveOwner bool
	// PreserveGroup keeps group ownership
	PreserveGroup bool
	// Recursive copies directories recursively
	Recursive bool
	// Progress shows per-file transfer progress
	Progress bool
}

// Executor performs the actual transfer. Implementations must be
// idempotent: re-running the same transfer over an unchanged pair of
// trees is safe.
type Executor interface {
	// Sync copies source to destination. The returned error carries the
	// primitive's own failure message verbatim; no retry happens at
	// this layer.
	Sync(ctx context.Context, source, dest string, opts Options) error
}
