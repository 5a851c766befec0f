// ABOUTME: Attack engine running one dictionary attack against a single hash
// ABOUTME: Validates input, streams candidates, and returns exactly one Outcome

package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/observability"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/progress"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

// ReasonNoSource is reported when a request carries no candidate source.
const ReasonNoSource = "no candidate source"

// Config holds configuration for the attack engine.
type Config struct {
	// Logger for attack events. Nil discards.
	Logger *slog.Logger

	// Metrics accumulates per-outcome counters. Nil creates a private collector.
	Metrics *observability.AttackMetrics

	// Audit records attack start and finish. Optional.
	Audit *observability.AuditLogger

	// RevealCandidates logs recovered plaintexts instead of redacting them.
	RevealCandidates bool
}

// Request describes one attack.
type Request struct {
	// Hex digest to recover, in either case.
	TargetHash string

	// Algorithm name: md5, sha1, sha256 or sha512.
	Algorithm string

	// Candidate source, read once in order.
	Source Source

	// Reporter is optional. It is started after the source opens and stopped
	// before Attack returns.
	Reporter *progress.Reporter
}

// Engine runs dictionary attacks. Calls to Attack are serialized.
type Engine struct {
	config  Config
	logger  *slog.Logger
	metrics *observability.AttackMetrics

	mu sync.Mutex
}

// NewEngine creates a new attack engine.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewAttackMetrics()
	}
	return &Engine{
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Stats returns cumulative statistics over all finished attacks.
func (e *Engine) Stats() *observability.MetricsSnapshot {
	return e.metrics.Snapshot()
}

// Attack runs one attack to completion or cancellation. ctx is the cancel
// signal and is polled before every candidate. Failures are reported in the
// returned Outcome, never as panics.
func (e *Engine) Attack(ctx context.Context, req Request) types.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, runID := observability.EnsureRunID(ctx)
	ctx, span := observability.StartSpan(ctx, "engine.attack",
		trace.WithAttributes(
			attribute.String("attack.algorithm", req.Algorithm),
			attribute.String("attack.run_id", runID.String()),
		),
	)
	defer span.End()

	alg, _ := types.ResolveAlgorithm(req.Algorithm)
	name := sourceName(req.Source)

	outcome, started := e.run(ctx, alg, name, req)
	outcome = outcome.WithRun(runID.String(), alg, strings.ToLower(req.TargetHash), name)

	e.metrics.RecordAttack(outcome.Kind.String(), outcome.Attempts, outcome.Elapsed, started)
	e.finish(ctx, span, outcome, started)

	return outcome
}

// run validates the request and scans the source. started reports whether
// scanning began.
func (e *Engine) run(ctx context.Context, alg types.Algorithm, name string, req Request) (types.Outcome, bool) {
	if !alg.IsValid() {
		return types.NewInvalidInputOutcome(types.ReasonUnsupportedAlgorithm), false
	}

	target, err := types.ParseTargetHash(alg, req.TargetHash)
	if err != nil {
		return types.NewInvalidInputOutcome(types.ReasonMalformedHash), false
	}

	if req.Source == nil {
		return types.NewSourceErrorOutcome(ReasonNoSource, 0, 0), false
	}

	rc, err := openSource(req.Source)
	if err != nil {
		return types.NewSourceErrorOutcome(err.Error(), 0, 0), false
	}
	defer rc.Close()

	e.metrics.AttackStarted()
	observability.LogWithContext(ctx, e.logger, slog.LevelInfo, "attack started",
		slog.String("algorithm", alg.String()),
		slog.String("target_hash", target.Value),
		slog.String("source", name),
	)
	if e.config.Audit != nil {
		e.config.Audit.LogAttackStart(ctx, observability.AttackEvent{
			Algorithm:  alg.String(),
			TargetHash: target.Value,
			Source:     name,
		})
	}

	var attempts atomic.Int64
	start := time.Now()

	if req.Reporter != nil {
		req.Reporter.Start(&attempts, start)
		defer req.Reporter.Stop()
	}

	return scan(ctx, target, rc, &attempts, start), true
}

// scan reads candidates until a match, end of input, a read error, or
// cancellation.
func scan(ctx context.Context, target types.TargetHash, r io.Reader, attempts *atomic.Int64, start time.Time) (outcome types.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			outcome = types.NewSourceErrorOutcome(fmt.Sprintf("candidate source panicked: %v", p), attempts.Load(), time.Since(start))
		}
	}()

	br := bufio.NewReader(r)
	for {
		if ctx.Err() != nil {
			return types.NewCancelledOutcome(attempts.Load(), time.Since(start))
		}

		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return types.NewSourceErrorOutcome(fmt.Sprintf("failed to read candidates: %v", err), attempts.Load(), time.Since(start))
		}

		if candidate := canonicalize(line); candidate != "" {
			n := attempts.Add(1)
			if target.Matches([]byte(candidate)) {
				return types.NewFoundOutcome(candidate, n, time.Since(start))
			}
		}

		if err != nil {
			return types.NewNotFoundOutcome(attempts.Load(), time.Since(start))
		}
	}
}

// canonicalize drops invalid UTF-8 and surrounding whitespace.
func canonicalize(line string) string {
	return strings.TrimSpace(strings.ToValidUTF8(line, ""))
}

func openSource(src Source) (rc io.ReadCloser, err error) {
	defer func() {
		if p := recover(); p != nil {
			rc, err = nil, fmt.Errorf("candidate source panicked: %v", p)
		}
	}()

	rc, err = src.Open()
	if err == nil && rc == nil {
		err = errors.New("candidate source returned no reader")
	}
	return rc, err
}

func sourceName(src Source) (name string) {
	if src == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			name = "unknown"
		}
	}()
	return src.Name()
}

func (e *Engine) finish(ctx context.Context, span trace.Span, outcome types.Outcome, started bool) {
	span.SetAttributes(
		attribute.String("attack.outcome", outcome.Kind.String()),
		attribute.Int64("attack.attempts", outcome.Attempts),
	)

	attrs := []any{
		slog.String("outcome", outcome.Kind.String()),
		slog.String("algorithm", outcome.Algorithm.String()),
		slog.Int64("attempts", outcome.Attempts),
		slog.Float64("elapsed_ms", float64(outcome.Elapsed.Microseconds())/1000),
		slog.Float64("rate", outcome.Rate()),
	}

	level := slog.LevelInfo
	switch {
	case outcome.IsFound():
		attrs = append(attrs, slog.String("candidate", observability.MaybeRedact(outcome.Candidate, e.config.RevealCandidates)))
	case outcome.Kind.IsFailure():
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("error", outcome.Err()))
		span.SetStatus(codes.Error, outcome.Reason)
	}
	observability.LogWithContext(ctx, e.logger, level, "attack finished", attrs...)

	if e.config.Audit != nil && started {
		e.config.Audit.LogAttackFinish(ctx, observability.AttackEvent{
			Algorithm:  outcome.Algorithm.String(),
			TargetHash: outcome.TargetHash,
			Source:     outcome.Source,
			Outcome:    outcome.Kind.String(),
			Attempts:   outcome.Attempts,
			Elapsed:    outcome.Elapsed,
		})
	}
}
