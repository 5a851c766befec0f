// ABOUTME: Audit logging for attack invocations
// ABOUTME: Records who ran which attack against which hash and how it ended

package observability

import (
	"context"
	"log/slog"
	"os"
	"os/user"
	"strconv"
	"time"
)

// Audit event type constants.
const (
	EventTypeAttack  = "ATTACK"
	EventTypePotfile = "POTFILE"
)

// Audit action constants.
const (
	ActionStart  = "START"
	ActionFinish = "FINISH"
	ActionRead   = "READ"
	ActionDelete = "DELETE"
)

// AuditLogger provides structured audit logging for cracking activity.
type AuditLogger struct {
	logger   *slog.Logger
	operator string
}

// NewAuditLogger creates a new audit logger. The operator is the local user
// name, or the UID when it cannot be resolved.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	operator := "uid:" + strconv.Itoa(os.Getuid())
	if u, err := user.Current(); err == nil {
		operator = u.Username
	}
	return &AuditLogger{logger: logger, operator: operator}
}

// AttackEvent describes one attack for the audit trail.
type AttackEvent struct {
	Algorithm  string
	TargetHash string
	Source     string
	Outcome    string
	Attempts   int64
	Elapsed    time.Duration
}

// LogAttackStart records the start of an attack.
func (a *AuditLogger) LogAttackStart(ctx context.Context, ev AttackEvent) {
	a.logger.InfoContext(ctx, "audit_event",
		slog.String("event_type", EventTypeAttack),
		slog.String("action", ActionStart),
		slog.String("operator", a.operator),
		slog.String("algorithm", ev.Algorithm),
		slog.String("target_hash", ev.TargetHash),
		slog.String("source", ev.Source),
		slog.String("run_id", RunIDFromContext(ctx).String()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LogAttackFinish records the terminal outcome of an attack.
func (a *AuditLogger) LogAttackFinish(ctx context.Context, ev AttackEvent) {
	a.logger.InfoContext(ctx, "audit_event",
		slog.String("event_type", EventTypeAttack),
		slog.String("action", ActionFinish),
		slog.String("operator", a.operator),
		slog.String("algorithm", ev.Algorithm),
		slog.String("target_hash", ev.TargetHash),
		slog.String("outcome", ev.Outcome),
		slog.Int64("attempts", ev.Attempts),
		slog.Duration("elapsed", ev.Elapsed),
		slog.String("run_id", RunIDFromContext(ctx).String()),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LogPotfileAccess records a read or delete of stored plaintexts.
func (a *AuditLogger) LogPotfileAccess(ctx context.Context, action, key string) {
	a.logger.InfoContext(ctx, "audit_event",
		slog.String("event_type", EventTypePotfile),
		slog.String("action", action),
		slog.String("operator", a.operator),
		slog.String("resource", key),
		slog.Time("timestamp", time.Now().UTC()),
	)
}
