// ABOUTME: BadgerDB wrapper for cracked hash records
// ABOUTME: Provides Put, Get, Delete, iteration and DropAll over JSON-encoded records

package potfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/types"
)

// Record is a recovered plaintext for one hash.
type Record struct {
	Hash      string          `json:"hash"`
	Algorithm types.Algorithm `json:"algorithm"`
	Plaintext string          `json:"plaintext"`
	Attempts  int64           `json:"attempts"`
	Source    string          `json:"source,omitempty"`
	RunID     string          `json:"run_id,omitempty"`
	CrackedAt time.Time       `json:"cracked_at"`
}

// Target returns the record's hash as a TargetHash.
func (r *Record) Target() types.TargetHash {
	return types.TargetHash{Algorithm: r.Algorithm, Value: r.Hash}
}

// Key returns the storage key for the record.
func (r *Record) Key() string {
	return r.Target().Key()
}

// StoreConfig holds configuration for the BadgerDB store.
type StoreConfig struct {
	// Path to the database directory. Required unless InMemory is true.
	Path string

	// InMemory runs the database in memory (for testing).
	InMemory bool

	// SyncWrites enables synchronous writes.
	SyncWrites bool

	// Logger for BadgerDB operations. Nil disables badger logging.
	Logger badger.Logger
}

// StoreStats contains statistics about the store.
type StoreStats struct {
	RecordCount int64
	SizeBytes   int64
}

// Store wraps BadgerDB for record storage.
type Store struct {
	db *badger.DB
}

// NewStore opens a BadgerDB store with the given configuration.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("store path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if cfg.SyncWrites {
		opts = opts.WithSyncWrites(true)
	}
	opts = opts.WithLogger(cfg.Logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	return &Store{db: db}, nil
}

// lockedMessage is the text badger reports when another handle holds the
// directory lock.
const lockedMessage = "Another process is using this Badger database"

// IsLocked reports whether err came from opening a directory that another
// store handle already holds.
func IsLocked(err error) bool {
	return err != nil && strings.Contains(err.Error(), lockedMessage)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores a record, replacing any existing record for the same hash.
func (s *Store) Put(_ context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := rec.Key()
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("failed to set key %s: %w", key, err)
		}
		return nil
	})
}

// Get retrieves the record for hash. Returns nil if the hash is not stored.
func (s *Store) Get(_ context.Context, hash types.TargetHash) (*Record, error) {
	var rec *Record

	err := s.db.View(func(txn *badger.Txn) error {
		key := hash.Key()
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get key %s: %w", key, err)
		}

		return item.Value(func(val []byte) error {
			rec = &Record{}
			if err := json.Unmarshal(val, rec); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			return nil
		})
	})

	return rec, err
}

// Delete removes the record for hash.
func (s *Store) Delete(_ context.Context, hash types.TargetHash) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(hash.Key()))
	})
}

// Iterate calls fn for every record in key order. Iteration stops at the
// first error from fn or when ctx is cancelled.
func (s *Store) Iterate(ctx context.Context, fn func(*Record) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", it.Item().Key(), err)
			}

			if err := fn(&rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// DropAll deletes every record.
func (s *Store) DropAll() error {
	return s.db.DropAll()
}

// Stats returns statistics about the store.
func (s *Store) Stats(_ context.Context) (*StoreStats, error) {
	stats := &StoreStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			stats.RecordCount++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	lsm, vlog := s.db.Size()
	stats.SizeBytes = lsm + vlog

	return stats, nil
}
