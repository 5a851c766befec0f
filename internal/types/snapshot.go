// ABOUTME: Progress snapshot emitted while an attack is running
// ABOUTME: Carries attempts, rate, elapsed time and optional host resource usage

package types

import (
	"encoding/json"
	"time"
)

// Snapshot is a point-in-time view of attack progress.
type Snapshot struct {
	Attempts  int64         `json:"attempts"`
	Rate      float64       `json:"rate"`
	Elapsed   time.Duration `json:"-"`
	Timestamp time.Time     `json:"timestamp"`

	// Final is set on the snapshot emitted when the reporter stops.
	Final bool `json:"final,omitempty"`

	// Host resource usage, zero unless a sampler is attached.
	CPUPercent        float64 `json:"cpu_percent,omitempty"`
	MemoryUsedPercent float64 `json:"memory_used_percent,omitempty"`
}

// NewSnapshot builds a snapshot and computes its rate.
func NewSnapshot(attempts int64, elapsed time.Duration) Snapshot {
	return Snapshot{
		Attempts:  attempts,
		Rate:      Rate(attempts, elapsed),
		Elapsed:   elapsed,
		Timestamp: time.Now().UTC(),
	}
}

// MarshalJSON encodes elapsed as fractional seconds.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		ElapsedSec float64 `json:"elapsed_sec"`
	}{
		plain:      plain(s),
		ElapsedSec: s.Elapsed.Seconds(),
	})
}

// Rate returns attempts per second, or 0 when elapsed is not positive.
func Rate(attempts int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(attempts) / elapsed.Seconds()
}
