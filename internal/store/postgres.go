package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over a pgx pool with dynamically built
// parameterized SQL. Column and table names come from the planning core,
// never from request input.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, table string, filter Filter) ([]Row, error) {
	q := "SELECT * FROM " + table
	args := make([]any, 0, len(filter))
	if len(filter) > 0 {
		conds := make([]string, 0, len(filter))
		for _, col := range sortedKeys(filter) {
			args = append(args, filter[col])
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		}
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]Row, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", table, err)
		}
		r := make(Row, len(fields))
		for i, f := range fields {
			r[string(f.Name)] = vals[i]
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return out, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, table string, rows []Row, conflictKeys []string) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("upsert %s: begin: %w", table, err)
	}
	defer tx.Rollback(ctx)

	for _, r := range rows {
		cols := sortedKeys(r)
		args := make([]any, 0, len(cols))
		ph := make([]string, 0, len(cols))
		for _, c := range cols {
			args = append(args, r[c])
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}

		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(ph, ", "))
		if len(conflictKeys) > 0 {
			sets := make([]string, 0, len(cols))
			for _, c := range cols {
				if contains(conflictKeys, c) {
					continue
				}
				sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
			}
			if len(sets) == 0 {
				q += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(conflictKeys, ", "))
			} else {
				q += fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(conflictKeys, ", "), strings.Join(sets, ", "))
			}
		}

		if _, err := tx.Exec(ctx, q, args...); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("upsert %s: commit: %w", table, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, table string, filter Filter) error {
	q := "DELETE FROM " + table
	args := make([]any, 0, len(filter))
	if len(filter) > 0 {
		conds := make([]string, 0, len(filter))
		for _, col := range sortedKeys(filter) {
			args = append(args, filter[col])
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		}
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	if _, err := s.pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
