package store

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory Store used by tests and ephemeral setups.
// It mirrors the Postgres upsert semantics: conflict keys identify the row,
// non-key columns are merged into the stored row.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Row)}
}

func (s *MemoryStore) Get(ctx context.Context, table string, filter Filter) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Row, 0)
	for _, r := range s.tables[table] {
		if matches(r, filter) {
			out = append(out, cloneRow(r))
		}
	}
	return out, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, table string, rows []Row, conflictKeys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range rows {
		merged := false
		if len(conflictKeys) > 0 {
			key := make(Filter, len(conflictKeys))
			for _, k := range conflictKeys {
				key[k] = in[k]
			}
			for _, existing := range s.tables[table] {
				if matches(existing, key) {
					for col, v := range in {
						existing[col] = v
					}
					merged = true
					break
				}
			}
		}
		if !merged {
			s.tables[table] = append(s.tables[table], cloneRow(in))
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, table string, filter Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tables[table][:0]
	for _, r := range s.tables[table] {
		if !matches(r, filter) {
			kept = append(kept, r)
		}
	}
	s.tables[table] = kept
	return nil
}

func matches(r Row, filter Filter) bool {
	for col, want := range filter {
		if !valueEqual(r[col], want) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Equal(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Equal(bv)
		}
	}
	return a == b
}

func cloneRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
