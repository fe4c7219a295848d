package planledger

import (
	"errors"
	"testing"

	"HTXErp/internal/subjects"

	"github.com/shopspring/decimal"
)

func balancedDoc(total string, scheduled string) *Document {
	return &Document{
		Kind:        PurchaseOrder,
		Number:      "PO-100",
		ProjectCode: "P1",
		SubjectCode: "3.1",
		Items: []LineItem{
			{ProductName: "Steel", Quantity: dec("1"), UnitPrice: dec(total)},
		},
		Installments: []Installment{
			{TermName: "Monthly", DueDate: day("2026-02-10"), Amount: dec(scheduled)},
		},
	}
}

func TestValidateDocument_ScheduleBalanceGate(t *testing.T) {
	doc := balancedDoc("1000", "998")
	err := ValidateDocument(doc, decimal.Zero)
	var mismatch *ScheduleMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ScheduleMismatchError, got %v", err)
	}
	assertDecimal(t, mismatch.Total, "1000", "mismatch.Total")
	assertDecimal(t, mismatch.Scheduled, "998", "mismatch.Scheduled")
	assertDecimal(t, mismatch.Diff, "2", "mismatch.Diff")

	// A half-unit rounding drift stays inside the tolerance.
	if err := ValidateDocument(balancedDoc("1000", "999.5"), decimal.Zero); err != nil {
		t.Fatalf("diff below tolerance should pass, got %v", err)
	}
}

func TestValidateDocument_CreditGate(t *testing.T) {
	doc := balancedDoc("600000", "600000")

	err := ValidateDocument(doc, dec("500000"))
	var credit *CreditLimitExceededError
	if !errors.As(err, &credit) {
		t.Fatalf("expected CreditLimitExceededError, got %v", err)
	}
	assertDecimal(t, credit.Limit, "500000", "credit.Limit")
	assertDecimal(t, credit.Amount, "600000", "credit.Amount")

	// Zero limit means no limit configured.
	if err := ValidateDocument(doc, decimal.Zero); err != nil {
		t.Fatalf("zero credit limit should pass, got %v", err)
	}
	// An amount exactly at the limit passes.
	if err := ValidateDocument(doc, dec("600000")); err != nil {
		t.Fatalf("amount at limit should pass, got %v", err)
	}
}

func TestValidateDocument_RequiredFields(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Document)
		wantField string
	}{
		{"missing number", func(d *Document) { d.Number = "" }, "po_number"},
		{"missing project", func(d *Document) { d.ProjectCode = "" }, "project_code"},
		{"no line items", func(d *Document) { d.Items = nil }, "items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := balancedDoc("100", "100")
			tc.mutate(doc)
			err := ValidateDocument(doc, decimal.Zero)
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tc.wantField {
				t.Errorf("missing field = %q, want %q", missing.Field, tc.wantField)
			}
		})
	}
}

func TestValidateDocument_PurchaseSubjectMustBeVariableCost(t *testing.T) {
	for _, code := range []string{"2.1", "1.0", "9.9", ""} {
		doc := balancedDoc("100", "100")
		doc.SubjectCode = code
		if err := ValidateDocument(doc, decimal.Zero); !errors.Is(err, subjects.ErrInvalidSubject) {
			t.Errorf("subject %q: expected ErrInvalidSubject, got %v", code, err)
		}
	}
}

func TestValidateDocument_SalesOrderNeedsNoSubject(t *testing.T) {
	doc := salesDoc("SO-1", "P1", "", inst("Deposit", "2026-02-01", "100"))
	if err := ValidateDocument(doc, decimal.Zero); err != nil {
		t.Fatalf("sales order should pass without a subject, got %v", err)
	}
	if doc.Subject() != "2.1" {
		t.Errorf("sales orders must post to 2.1, got %q", doc.Subject())
	}
}
