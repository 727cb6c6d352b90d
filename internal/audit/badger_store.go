// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/contentgate/internal/logging"
)

var _ badger.Logger = (*logging.BadgerLogger)(nil)

// Key prefixes for BadgerDB storage
const (
	decisionKeyPrefix   = "decision:"
	decisionIDKeyPrefix = "decision_id:"
)

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db   *badger.DB
	owns bool
}

// OpenBadgerStore opens (or creates) a ledger at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, errors.New("audit badger path is required")
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = logging.NewBadgerLogger()

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for audit: %w", err)
	}
	return &BadgerStore{db: db, owns: true}, nil
}

// NewBadgerStore wraps an already open database. Close does not close it.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// decisionKey sorts lexically by time.
func decisionKey(d *Decision) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", decisionKeyPrefix, d.Timestamp.UnixNano(), d.ID))
}

// Save persists a decision.
func (s *BadgerStore) Save(_ context.Context, d *Decision) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	key := decisionKey(d)
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set decision: %w", err)
		}
		if err := txn.Set([]byte(decisionIDKeyPrefix+d.ID), key); err != nil {
			return fmt.Errorf("set decision index: %w", err)
		}
		return nil
	})
}

// Get retrieves a decision by ID.
func (s *BadgerStore) Get(_ context.Context, id string) (*Decision, error) {
	var d Decision

	err := s.db.View(func(txn *badger.Txn) error {
		idx, err := txn.Get([]byte(decisionIDKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("get decision index: %w", err)
		}
		key, err := idx.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read decision index: %w", err)
		}

		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("get decision: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &d)
		})
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// scan visits decisions newest first until visit returns false.
func (s *BadgerStore) scan(visit func(d *Decision) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(decisionKeyPrefix)
		seek := append([]byte(decisionKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var d Decision
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			})
			if err != nil {
				return fmt.Errorf("decode decision: %w", err)
			}
			if !visit(&d) {
				return nil
			}
		}
		return nil
	})
}

// Query retrieves decisions matching the filter, most recent first.
func (s *BadgerStore) Query(_ context.Context, filter QueryFilter) ([]Decision, error) {
	var results []Decision
	err := s.scan(func(d *Decision) bool {
		if filter.Matches(d) {
			results = append(results, *d)
		}
		return filter.Limit <= 0 || len(results) < filter.Limit
	})
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	return results, nil
}

// Count returns the number of decisions matching the filter.
func (s *BadgerStore) Count(_ context.Context, filter QueryFilter) (int64, error) {
	var count int64
	err := s.scan(func(d *Decision) bool {
		if filter.Matches(d) {
			count++
		}
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("count decisions: %w", err)
	}
	return count, nil
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if s.owns {
		return s.db.Close()
	}
	return nil
}
