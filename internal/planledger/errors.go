package planledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScheduleMismatchError rejects a document whose installment schedule does
// not balance against the line-item total beyond the fixed tolerance.
type ScheduleMismatchError struct {
	Total     decimal.Decimal
	Scheduled decimal.Decimal
	Diff      decimal.Decimal
}

func (e *ScheduleMismatchError) Error() string {
	return fmt.Sprintf("schedule mismatch: document total %s vs scheduled %s (diff %s)",
		e.Total, e.Scheduled, e.Diff)
}

// CreditLimitExceededError rejects a document whose total exceeds the
// counterparty's configured credit limit. A limit of zero means no limit.
type CreditLimitExceededError struct {
	Limit  decimal.Decimal
	Amount decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded: limit %s, document amount %s", e.Limit, e.Amount)
}

// MissingFieldError rejects a document with a missing required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// ReconciliationError reports a failed scope recompute after a committed
// document write. The document stays committed; the Real figures of the
// scope are stale until the scope is reconciled again.
type ReconciliationError struct {
	ProjectCode string
	SubjectCode string
	Err         error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed for project %s subject %s: %v",
		e.ProjectCode, e.SubjectCode, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
