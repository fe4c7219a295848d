package store

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one record of a table, keyed by column name.
type Row map[string]any

// Filter is an equality conjunction over columns. A nil or empty filter
// matches every row of the table.
type Filter map[string]any

// Store is the persistence boundary for the planning core. Upsert merges
// only the columns present in the given rows: on conflict the untouched
// columns keep their stored values. That merge rule is what lets the manual
// plan writer and the reconciliation engine address the same matrix row
// without clobbering each other.
type Store interface {
	Get(ctx context.Context, table string, filter Filter) ([]Row, error)
	Upsert(ctx context.Context, table string, rows []Row, conflictKeys []string) error
	Delete(ctx context.Context, table string, filter Filter) error
}

// String reads a column as string, tolerating NULLs and []byte.
func String(r Row, col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

// Decimal reads a column as decimal, tolerating the various numeric shapes
// drivers hand back (pgx numerics arrive as driver.Valuer).
func Decimal(r Row, col string) decimal.Decimal {
	switch v := r[col].(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil || dv == nil {
			return decimal.Zero
		}
		return Decimal(Row{col: dv}, col)
	default:
		return decimal.Zero
	}
}

// Time reads a column as time, accepting time.Time or a YYYY-MM-DD string.
func Time(r Row, col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}
		}
		return t
	case []byte:
		t, err := time.Parse("2006-01-02", string(v))
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}
