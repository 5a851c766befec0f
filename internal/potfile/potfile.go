// ABOUTME: Potfile of previously cracked hashes backed by bloom filter and BadgerDB
// ABOUTME: Two-tier lookup: fast bloom rejection, then store confirmation

package potfile

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/observability"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/resilience"
	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

// Config holds configuration for a potfile.
type Config struct {
	// Directory holding the BadgerDB files.
	Dir string

	// InMemory keeps the potfile in memory (for testing).
	InMemory bool

	// Bloom filter sizing.
	Bloom BloomConfig

	// Logger for potfile events. Nil discards.
	Logger *slog.Logger

	// Audit records reads and deletes of stored plaintexts. Optional.
	Audit *observability.AuditLogger

	// OpenRetry bounds how long Open waits for another process to release
	// the directory lock.
	OpenRetry resilience.RetryConfig
}

// Stats contains statistics about the potfile.
type Stats struct {
	RecordCount    int64
	StoreSizeBytes int64

	BloomCapacity   uint
	BloomBitSetSize uint64

	TotalLookups    int64
	BloomRejections int64
	BloomHits       int64
	StoreHits       int64
}

// Potfile stores plaintexts recovered by successful attacks.
type Potfile struct {
	store  *Store
	bloom  *BloomFilter
	config Config
	logger *slog.Logger

	totalLookups    atomic.Int64
	bloomRejections atomic.Int64
	bloomHits       atomic.Int64
	storeHits       atomic.Int64
}

// Open opens the potfile and populates the bloom filter from stored records.
func Open(ctx context.Context, cfg Config) (*Potfile, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = observability.DiscardLogger()
	}

	retry := cfg.OpenRetry
	if retry.Name == "" {
		retry.Name = "potfile.open"
	}
	if retry.Logger == nil {
		retry.Logger = logger
	}

	store, err := resilience.Retry(ctx, retry, IsLocked, func() (*Store, error) {
		return NewStore(StoreConfig{Path: cfg.Dir, InMemory: cfg.InMemory})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open potfile store: %w", err)
	}

	p := &Potfile{
		store:  store,
		bloom:  NewBloomFilter(cfg.Bloom),
		config: cfg,
		logger: logger,
	}

	if err := p.RebuildBloomFilter(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to rebuild bloom filter: %w", err)
	}

	return p, nil
}

// Close releases the underlying store.
func (p *Potfile) Close() error {
	return p.store.Close()
}

// Lookup returns the stored record for hash, or nil if it was never cracked.
func (p *Potfile) Lookup(ctx context.Context, hash types.TargetHash) (*Record, error) {
	p.totalLookups.Add(1)

	if !p.bloom.Test(hash) {
		p.bloomRejections.Add(1)
		return nil, nil
	}
	p.bloomHits.Add(1)

	rec, err := p.store.Get(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("potfile lookup %s: %w", hash.Key(), err)
	}
	if rec == nil {
		p.logger.Debug("bloom false positive", slog.String("key", hash.Key()))
		return nil, nil
	}

	p.storeHits.Add(1)
	if p.config.Audit != nil {
		p.config.Audit.LogPotfileAccess(ctx, observability.ActionRead, hash.Key())
	}
	return rec, nil
}

// Add stores rec and marks its hash in the bloom filter.
func (p *Potfile) Add(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	if err := types.ValidateHash(rec.Algorithm, rec.Hash); err != nil {
		return fmt.Errorf("invalid record hash: %w", err)
	}
	if rec.CrackedAt.IsZero() {
		rec.CrackedAt = time.Now().UTC()
	}

	if err := p.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	p.bloom.Add(rec.Target())
	return nil
}

// RecordOutcome stores a Found outcome. Other kinds are ignored.
func (p *Potfile) RecordOutcome(ctx context.Context, target types.TargetHash, outcome types.Outcome) error {
	if !outcome.IsFound() {
		return nil
	}
	return p.Add(ctx, &Record{
		Hash:      target.Value,
		Algorithm: target.Algorithm,
		Plaintext: outcome.Candidate,
		Attempts:  outcome.Attempts,
		Source:    outcome.Source,
		RunID:     outcome.RunID,
		CrackedAt: outcome.FinishedAt,
	})
}

// List returns every stored record in key order.
func (p *Potfile) List(ctx context.Context) ([]*Record, error) {
	var records []*Record
	err := p.store.Iterate(ctx, func(rec *Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Clear deletes every record and resets the bloom filter.
func (p *Potfile) Clear(ctx context.Context) error {
	if err := p.store.DropAll(); err != nil {
		return fmt.Errorf("failed to clear potfile: %w", err)
	}
	p.bloom.Clear()
	if p.config.Audit != nil {
		p.config.Audit.LogPotfileAccess(ctx, observability.ActionDelete, "*")
	}
	return nil
}

// RebuildBloomFilter rebuilds the bloom filter from the store.
func (p *Potfile) RebuildBloomFilter(ctx context.Context) error {
	fresh := NewBloomFilter(p.config.Bloom)

	var count int
	err := p.store.Iterate(ctx, func(rec *Record) error {
		fresh.Add(rec.Target())
		count++
		return nil
	})
	if err != nil {
		return err
	}

	p.bloom.Swap(fresh)
	p.logger.Debug("bloom filter rebuilt", slog.Int("records", count))
	return nil
}

// Stats returns statistics about the potfile.
func (p *Potfile) Stats(ctx context.Context) (*Stats, error) {
	storeStats, err := p.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	bloomStats := p.bloom.Stats()

	return &Stats{
		RecordCount:     storeStats.RecordCount,
		StoreSizeBytes:  storeStats.SizeBytes,
		BloomCapacity:   bloomStats.Capacity,
		BloomBitSetSize: bloomStats.BitSetSize,
		TotalLookups:    p.totalLookups.Load(),
		BloomRejections: p.bloomRejections.Load(),
		BloomHits:       p.bloomHits.Load(),
		StoreHits:       p.storeHits.Load(),
	}, nil
}
