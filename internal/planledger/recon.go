package planledger

import (
	"context"
	"sync"

	"HTXErp/internal/config"
	"HTXErp/internal/store"

	"github.com/shopspring/decimal"
)

// Reconciler recomputes the Real side of one (project, subject) scope from
// the installment schedules of every committed document in that scope. The
// recompute is full, not incremental, so it is deterministic and idempotent;
// deletions fall out naturally because stale buckets are written back to 0.
type Reconciler struct {
	store store.Store

	mu     sync.Mutex
	scopes map[string]*sync.Mutex
}

func NewReconciler(st store.Store) *Reconciler {
	return &Reconciler{store: st, scopes: make(map[string]*sync.Mutex)}
}

// scopeLock serializes recomputes of the same scope. Two interleaved
// recomputes could otherwise both read a stale document list and write an
// outdated sum. Different scopes proceed concurrently.
func (r *Reconciler) scopeLock(projectCode, subjectCode string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := projectCode + "|" + subjectCode
	l, ok := r.scopes[key]
	if !ok {
		l = &sync.Mutex{}
		r.scopes[key] = l
	}
	return l
}

// Reconcile recomputes real_amount for every cell of the scope. Any fetch
// failure aborts the whole recompute; sums are never partially applied.
func (r *Reconciler) Reconcile(ctx context.Context, projectCode, subjectCode string) error {
	lock := r.scopeLock(projectCode, subjectCode)
	lock.Lock()
	defer lock.Unlock()

	realByMonth, err := r.scopeSums(ctx, projectCode, subjectCode)
	if err != nil {
		return &ReconciliationError{ProjectCode: projectCode, SubjectCode: subjectCode, Err: err}
	}

	// Buckets that already hold a cell stay addressable so a vanished
	// schedule zeroes the stale Real value instead of leaving it behind.
	existing, err := r.store.Get(ctx, "project_matrix", store.Filter{
		"project_code": projectCode,
		"cost_item":    subjectCode,
	})
	if err != nil {
		return &ReconciliationError{ProjectCode: projectCode, SubjectCode: subjectCode, Err: err}
	}
	for _, cell := range existing {
		m := store.String(cell, "year_month")
		if _, ok := realByMonth[m]; !ok {
			realByMonth[m] = decimal.Zero
		}
	}

	rows := make([]store.Row, 0, len(realByMonth))
	for month, amount := range realByMonth {
		rows = append(rows, store.Row{
			"project_code": projectCode,
			"year_month":   month,
			"cost_item":    subjectCode,
			"real_amount":  amount,
		})
	}
	// plan_amount is deliberately absent: the merge-upsert keeps the
	// manually entered value untouched.
	if err := r.store.Upsert(ctx, "project_matrix", rows, []string{"project_code", "year_month", "cost_item"}); err != nil {
		return &ReconciliationError{ProjectCode: projectCode, SubjectCode: subjectCode, Err: err}
	}
	return nil
}

// scopeSums flattens the installments of every committed document in scope
// into month buckets. Sales orders always post to the revenue subject;
// purchase orders match on their cost subject.
func (r *Reconciler) scopeSums(ctx context.Context, projectCode, subjectCode string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)

	if subjectCode == config.RevenueSubjectCode {
		if err := r.sumKind(ctx, SalesOrder, store.Filter{"project_code": projectCode}, sums); err != nil {
			return nil, err
		}
	}
	err := r.sumKind(ctx, PurchaseOrder, store.Filter{
		"project_code": projectCode,
		"cost_item":    subjectCode,
	}, sums)
	if err != nil {
		return nil, err
	}
	return sums, nil
}

func (r *Reconciler) sumKind(ctx context.Context, kind DocumentKind, filter store.Filter, sums map[string]decimal.Decimal) error {
	docs, err := r.store.Get(ctx, kind.headerTable(), filter)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		number := store.String(doc, kind.numberColumn())
		pays, err := r.store.Get(ctx, kind.paymentsTable(), store.Filter{kind.numberColumn(): number})
		if err != nil {
			return err
		}
		for _, p := range pays {
			due := store.Time(p, "expected_date")
			if due.IsZero() {
				continue
			}
			m := MonthKey(due)
			sums[m] = sums[m].Add(store.Decimal(p, "amount"))
		}
	}
	return nil
}
