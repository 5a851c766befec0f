// ABOUTME: Outcome type representing the terminal result of one dictionary attack
// ABOUTME: Tagged as found, not found, cancelled, invalid input, or source error

package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/observability"
)

// OutcomeKind tags the variant of an Outcome.
type OutcomeKind int

const (
	// OutcomeNotFound indicates the source was exhausted without a match.
	OutcomeNotFound OutcomeKind = iota
	// OutcomeFound indicates a candidate matched the target hash.
	OutcomeFound
	// OutcomeCancelled indicates the attack was stopped by the caller.
	OutcomeCancelled
	// OutcomeInvalidInput indicates the algorithm or hash was rejected before scanning.
	OutcomeInvalidInput
	// OutcomeSourceError indicates the candidate source could not be opened or read.
	OutcomeSourceError
)

// Reasons reported for invalid input.
const (
	ReasonUnsupportedAlgorithm = "unsupported algorithm"
	ReasonMalformedHash        = "malformed hash"
)

// Error codes used when a failure outcome is converted to an error.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeSourceError  = "SOURCE_ERROR"
)

// String returns the string representation of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeSourceError:
		return "source_error"
	default:
		return "not_found"
	}
}

// MarshalText encodes the kind as its name.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsFailure returns true for kinds that represent a failed invocation.
func (k OutcomeKind) IsFailure() bool {
	return k == OutcomeInvalidInput || k == OutcomeSourceError
}

// Outcome is the terminal result of a single attack. Construct it with the
// New*Outcome functions; it is a value and is not modified once returned.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Matching candidate, set only for OutcomeFound.
	Candidate string `json:"candidate,omitempty"`

	// Non-empty candidates tested before termination.
	Attempts int64 `json:"attempts"`

	// Wall time spent scanning.
	Elapsed time.Duration `json:"-"`

	// Failure reason for OutcomeInvalidInput and OutcomeSourceError.
	Reason string `json:"reason,omitempty"`

	// Attack metadata.
	RunID      string    `json:"run_id,omitempty"`
	Algorithm  Algorithm `json:"algorithm"`
	TargetHash string    `json:"target_hash,omitempty"`
	Source     string    `json:"source,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewFoundOutcome creates an Outcome for a matched candidate.
func NewFoundOutcome(candidate string, attempts int64, elapsed time.Duration) Outcome {
	return Outcome{
		Kind:       OutcomeFound,
		Candidate:  candidate,
		Attempts:   attempts,
		Elapsed:    elapsed,
		FinishedAt: time.Now().UTC(),
	}
}

// NewNotFoundOutcome creates an Outcome for an exhausted source.
func NewNotFoundOutcome(attempts int64, elapsed time.Duration) Outcome {
	return Outcome{
		Kind:       OutcomeNotFound,
		Attempts:   attempts,
		Elapsed:    elapsed,
		FinishedAt: time.Now().UTC(),
	}
}

// NewCancelledOutcome creates an Outcome for an attack stopped by the caller.
func NewCancelledOutcome(attempts int64, elapsed time.Duration) Outcome {
	return Outcome{
		Kind:       OutcomeCancelled,
		Attempts:   attempts,
		Elapsed:    elapsed,
		FinishedAt: time.Now().UTC(),
	}
}

// NewInvalidInputOutcome creates an Outcome for rejected input.
func NewInvalidInputOutcome(reason string) Outcome {
	return Outcome{
		Kind:       OutcomeInvalidInput,
		Reason:     reason,
		FinishedAt: time.Now().UTC(),
	}
}

// NewSourceErrorOutcome creates an Outcome for an unreadable candidate source.
// Attempts made before a mid-scan failure are kept.
func NewSourceErrorOutcome(reason string, attempts int64, elapsed time.Duration) Outcome {
	return Outcome{
		Kind:       OutcomeSourceError,
		Reason:     reason,
		Attempts:   attempts,
		Elapsed:    elapsed,
		FinishedAt: time.Now().UTC(),
	}
}

// WithRun sets attack metadata and returns the outcome for chaining.
func (o Outcome) WithRun(runID string, alg Algorithm, target, source string) Outcome {
	o.RunID = runID
	o.Algorithm = alg
	o.TargetHash = target
	o.Source = source
	return o
}

// IsFound returns true if a candidate matched.
func (o Outcome) IsFound() bool {
	return o.Kind == OutcomeFound
}

// Rate returns attempts per second over the elapsed time, or 0.
func (o Outcome) Rate() float64 {
	return Rate(o.Attempts, o.Elapsed)
}

// Err returns nil unless the outcome is a failure, in which case it returns
// an *observability.ErrorContext describing it.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeInvalidInput:
		return observability.NewErrorContext(CodeInvalidInput, observability.CategoryUserError, "attack").
			WithDetails(o.Reason).
			WithError(fmt.Errorf("invalid input: %s", o.Reason))
	case OutcomeSourceError:
		return observability.NewErrorContext(CodeSourceError, observability.CategoryPermanent, "read_candidates").
			WithDetails(o.Reason).
			WithError(fmt.Errorf("candidate source: %s", o.Reason))
	default:
		return nil
	}
}

// MarshalJSON adds elapsed milliseconds and rate to the encoded outcome.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	return json.Marshal(struct {
		plain
		ElapsedMs float64 `json:"elapsed_ms"`
		Rate      float64 `json:"rate"`
	}{
		plain:     plain(o),
		ElapsedMs: float64(o.Elapsed.Microseconds()) / 1000,
		Rate:      o.Rate(),
	})
}
