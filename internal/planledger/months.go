package planledger

import (
	"context"
	"fmt"
	"time"

	"HTXErp/internal/config"
	"HTXErp/internal/store"
)

// MonthKey truncates a date to its month start in YYYY-MM-DD form, the
// bucket key of every matrix cell.
func MonthKey(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(config.DateFormat)
}

// MonthSequence generates n month keys starting at the month of start.
func MonthSequence(start time.Time, n int) []string {
	base := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, base.AddDate(0, i, 0).Format(config.DateFormat))
	}
	return out
}

// CreateMonthAxis persists the fixed month buckets of a project. The axis is
// generated once at project creation and never recomputed from start_date,
// so later edits to the project record cannot silently re-address cells.
func CreateMonthAxis(ctx context.Context, st store.Store, projectCode string, start time.Time) error {
	months := MonthSequence(start, config.MatrixMonths)
	rows := make([]store.Row, 0, len(months))
	for i, m := range months {
		rows = append(rows, store.Row{
			"project_code": projectCode,
			"seq":          i,
			"year_month":   m,
		})
	}
	if err := st.Upsert(ctx, "project_months", rows, []string{"project_code", "seq"}); err != nil {
		return fmt.Errorf("create month axis for %s: %w", projectCode, err)
	}
	return nil
}

// MonthAxis loads the persisted bucket list of a project in sequence order.
func MonthAxis(ctx context.Context, st store.Store, projectCode string) ([]string, error) {
	rows, err := st.Get(ctx, "project_months", store.Filter{"project_code": projectCode})
	if err != nil {
		return nil, fmt.Errorf("month axis for %s: %w", projectCode, err)
	}
	months := make([]string, len(rows))
	for _, r := range rows {
		seq := int(store.Decimal(r, "seq").IntPart())
		if seq >= 0 && seq < len(months) {
			months[seq] = store.String(r, "year_month")
		}
	}
	return months, nil
}
