// ABOUTME: Tests for progress snapshots and rate computation
// ABOUTME: Rate is zero at zero elapsed and JSON carries elapsed seconds

package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

func TestRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attempts int64
		elapsed  time.Duration
		want     float64
	}{
		{name: "zero elapsed", attempts: 100, elapsed: 0, want: 0},
		{name: "negative elapsed", attempts: 100, elapsed: -time.Second, want: 0},
		{name: "one second", attempts: 100, elapsed: time.Second, want: 100},
		{name: "half second", attempts: 100, elapsed: 500 * time.Millisecond, want: 200},
		{name: "no attempts", attempts: 0, elapsed: time.Second, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := types.Rate(tt.attempts, tt.elapsed); got != tt.want {
				t.Errorf("Rate(%d, %v) = %v, want %v", tt.attempts, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	t.Parallel()

	s := types.NewSnapshot(300, 1500*time.Millisecond)
	s.Final = true

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if decoded["elapsed_sec"] != 1.5 {
		t.Errorf("elapsed_sec = %v, want 1.5", decoded["elapsed_sec"])
	}
	if decoded["rate"] != float64(200) {
		t.Errorf("rate = %v, want 200", decoded["rate"])
	}
	if decoded["final"] != true {
		t.Errorf("final = %v, want true", decoded["final"])
	}
	if _, ok := decoded["cpu_percent"]; ok {
		t.Error("cpu_percent should be omitted when zero")
	}
}
