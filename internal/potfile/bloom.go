// ABOUTME: Bloom filter prefilter over cracked hash keys
// ABOUTME: Thread-safe probabilistic set used to skip store reads for unseen hashes

package potfile

import (
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

// BloomConfig holds configuration for the Bloom filter.
type BloomConfig struct {
	// Expected number of items to be added.
	ExpectedItems uint

	// Desired false positive rate (e.g., 0.01 for 1%).
	FalsePositiveRate float64
}

// DefaultBloomConfig returns a filter sized for a personal potfile.
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{
		ExpectedItems:     100_000,
		FalsePositiveRate: 0.001,
	}
}

// BloomStats contains statistics about the Bloom filter.
type BloomStats struct {
	Capacity          uint
	FalsePositiveRate float64

	// Size of the bit set in bytes.
	BitSetSize uint64

	// Number of hash functions used.
	HashFunctions uint
}

// BloomFilter wraps a Bloom filter with atomic swap capability.
type BloomFilter struct {
	filter atomic.Pointer[bloom.BloomFilter]
	mu     sync.RWMutex
	config BloomConfig
}

// NewBloomFilter creates a new Bloom filter. Zero fields fall back to
// DefaultBloomConfig.
func NewBloomFilter(cfg BloomConfig) *BloomFilter {
	def := DefaultBloomConfig()
	if cfg.ExpectedItems == 0 {
		cfg.ExpectedItems = def.ExpectedItems
	}
	if cfg.FalsePositiveRate <= 0 || cfg.FalsePositiveRate >= 1 {
		cfg.FalsePositiveRate = def.FalsePositiveRate
	}

	bf := &BloomFilter{config: cfg}
	bf.filter.Store(bloom.NewWithEstimates(cfg.ExpectedItems, cfg.FalsePositiveRate))
	return bf
}

// Add adds a hash to the filter.
func (bf *BloomFilter) Add(hash types.TargetHash) {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	bf.filter.Load().AddString(hash.Key())
}

// Test reports whether hash might be present. False means definitely absent.
func (bf *BloomFilter) Test(hash types.TargetHash) bool {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	return bf.filter.Load().TestString(hash.Key())
}

// Swap atomically replaces the internal filter with the one from other.
func (bf *BloomFilter) Swap(other *BloomFilter) {
	if other == nil {
		return
	}
	bf.mu.Lock()
	defer bf.mu.Unlock()
	if f := other.filter.Load(); f != nil {
		bf.filter.Store(f)
	}
}

// Clear replaces the filter with an empty one.
func (bf *BloomFilter) Clear() {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	bf.filter.Store(bloom.NewWithEstimates(bf.config.ExpectedItems, bf.config.FalsePositiveRate))
}

// Stats returns statistics about the filter.
func (bf *BloomFilter) Stats() BloomStats {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	f := bf.filter.Load()
	return BloomStats{
		Capacity:          bf.config.ExpectedItems,
		FalsePositiveRate: bf.config.FalsePositiveRate,
		BitSetSize:        uint64(f.Cap() / 8),
		HashFunctions:     f.K(),
	}
}
