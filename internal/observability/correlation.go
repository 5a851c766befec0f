// ABOUTME: Run identifiers correlating logs, spans and outcomes of one attack
// ABOUTME: Generates UUID run IDs and carries them through context

package observability

import (
	"context"

	"github.com/google/uuid"
)

type runIDKey struct{}

// RunID identifies a single attack invocation.
type RunID string

// String returns the string representation of the run ID.
func (r RunID) String() string {
	return string(r)
}

// NewRunID generates a new unique run ID.
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// WithRunID returns a new context carrying the run ID.
func WithRunID(ctx context.Context, id RunID) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext extracts the run ID from the context, or "".
func RunIDFromContext(ctx context.Context) RunID {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(RunID)
	return id
}

// EnsureRunID returns ctx and its run ID, attaching a fresh one if absent.
func EnsureRunID(ctx context.Context) (context.Context, RunID) {
	if id := RunIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewRunID()
	return WithRunID(ctx, id), id
}
