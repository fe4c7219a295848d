package planledger

import (
	"fmt"

	"HTXErp/internal/config"
	"HTXErp/internal/subjects"

	"github.com/shopspring/decimal"
)

var scheduleTolerance = decimal.RequireFromString(config.ScheduleTolerance)

// ValidateDocument runs the pre-commit gate: required fields, subject
// classification, schedule balance and credit exposure. A document either
// passes all checks or is rejected outright; there is no draft state.
//
// creditLimit comes from the partner directory; zero means no limit agreed.
func ValidateDocument(doc *Document, creditLimit decimal.Decimal) error {
	if doc.Number == "" {
		return &MissingFieldError{Field: doc.Kind.numberColumn()}
	}
	if doc.ProjectCode == "" {
		return &MissingFieldError{Field: "project_code"}
	}
	if len(doc.Items) == 0 {
		return &MissingFieldError{Field: "items"}
	}

	if doc.Kind == PurchaseOrder {
		s, err := subjects.Resolve(doc.SubjectCode)
		if err != nil {
			return err
		}
		if s.Group != subjects.GroupVariableCost {
			return fmt.Errorf("%w: purchase orders must post to a variable-cost subject, got %q",
				subjects.ErrInvalidSubject, doc.SubjectCode)
		}
	}

	total := doc.TotalAmount()
	scheduled := doc.ScheduledAmount()
	if diff := total.Sub(scheduled).Abs(); diff.GreaterThan(scheduleTolerance) {
		return &ScheduleMismatchError{Total: total, Scheduled: scheduled, Diff: diff}
	}

	if creditLimit.IsPositive() && total.GreaterThan(creditLimit) {
		return &CreditLimitExceededError{Limit: creditLimit, Amount: total}
	}

	return nil
}
