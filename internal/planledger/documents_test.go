package planledger

import (
	"context"
	"errors"
	"testing"

	"HTXErp/internal/store"
)

func TestDocumentStore_ReplacesScheduleInFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProject(t, "P1", "Loom Line", "CUST-1", "2026-01-01")

	if err := f.docs.Upsert(ctx, purchaseDoc("PO-1", "P1", "3.1",
		inst("Deposit", "2026-02-10", "400"),
		inst("Balance", "2026-04-25", "600"),
	)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Re-save with a reduced schedule: the old rows must not survive.
	if err := f.docs.Upsert(ctx, purchaseDoc("PO-1", "P1", "3.1",
		inst("Full", "2026-02-10", "1000"),
	)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	pays, err := f.store.Get(ctx, "po_payments", store.Filter{"po_number": "PO-1"})
	if err != nil {
		t.Fatalf("get payments: %v", err)
	}
	if len(pays) != 1 {
		t.Fatalf("expected one installment after replace, got %d", len(pays))
	}

	// The abandoned april bucket is zeroed, not left stale.
	feb := f.cell(t, "P1", "2026-02-01", "3.1")
	assertDecimal(t, store.Decimal(feb, "real_amount"), "1000", "february real")
	apr := f.cell(t, "P1", "2026-04-01", "3.1")
	assertDecimal(t, store.Decimal(apr, "real_amount"), "0", "april real")
}

func TestDocumentStore_ReclassifiedOrderClearsOldScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProject(t, "P1", "Loom Line", "CUST-1", "2026-01-01")

	if err := f.docs.Upsert(ctx, purchaseDoc("PO-1", "P1", "3.1", inst("Full", "2026-03-05", "100"))); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Re-save under another cost subject: the old subject's cell must be
	// zeroed, not left carrying the moved amount.
	if err := f.docs.Upsert(ctx, purchaseDoc("PO-1", "P1", "3.2", inst("Full", "2026-03-05", "100"))); err != nil {
		t.Fatalf("reclassify upsert: %v", err)
	}

	old := f.cell(t, "P1", "2026-03-01", "3.1")
	assertDecimal(t, store.Decimal(old, "real_amount"), "0", "old subject real")
	moved := f.cell(t, "P1", "2026-03-01", "3.2")
	assertDecimal(t, store.Decimal(moved, "real_amount"), "100", "new subject real")
}

func TestDocumentStore_MovedProjectClearsOldScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProject(t, "P1", "Loom Line", "CUST-1", "2026-01-01")
	f.addProject(t, "P2", "Dye House", "CUST-1", "2026-01-01")

	if err := f.docs.Upsert(ctx, purchaseDoc("PO-1", "P1", "3.1", inst("Full", "2026-03-05", "250"))); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := f.docs.Upsert(ctx, purchaseDoc("PO-1", "P2", "3.1", inst("Full", "2026-03-05", "250"))); err != nil {
		t.Fatalf("move upsert: %v", err)
	}

	old := f.cell(t, "P1", "2026-03-01", "3.1")
	assertDecimal(t, store.Decimal(old, "real_amount"), "0", "old project real")
	moved := f.cell(t, "P2", "2026-03-01", "3.1")
	assertDecimal(t, store.Decimal(moved, "real_amount"), "250", "new project real")
}

func TestDocumentStore_RejectedDocumentLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProject(t, "P1", "Loom Line", "CUST-1", "2026-01-01")
	f.addPartner(t, "SUP-1", "Mill Supply", "Supplier", "500000")

	doc := purchaseDoc("PO-1", "P1", "3.1", inst("Full", "2026-02-10", "600000"))
	doc.CounterpartyID = "SUP-1"

	err := f.docs.Upsert(ctx, doc)
	var credit *CreditLimitExceededError
	if !errors.As(err, &credit) {
		t.Fatalf("expected CreditLimitExceededError, got %v", err)
	}

	headers, err := f.store.Get(ctx, "purchase_orders", store.Filter{"po_number": "PO-1"})
	if err != nil {
		t.Fatalf("get headers: %v", err)
	}
	if len(headers) != 0 {
		t.Fatalf("rejected document must not be committed, found %d headers", len(headers))
	}
	if n := f.cellCount(t, "P1", "3.1"); n != 0 {
		t.Fatalf("rejected document must not touch the matrix, found %d cells", n)
	}
}

func TestDocumentStore_LoadRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProject(t, "P1", "Loom Line", "CUST-1", "2026-01-01")
	f.addPartner(t, "SUP-1", "Mill Supply", "Supplier", "0")

	in := &Document{
		Kind:           PurchaseOrder,
		Number:         "PO-7",
		ProjectCode:    "P1",
		CounterpartyID: "SUP-1",
		SubjectCode:    "3.3",
		OrderDate:      day("2026-01-20"),
		TaxType:        "Exclusive",
		Items: []LineItem{
			{ProductName: "Dyeing", Spec: "batch", Quantity: dec("4"), UnitPrice: dec("250")},
		},
		Installments: []Installment{
			inst("Deposit", "2026-02-01", "300"),
			inst("Balance", "2026-03-01", "700"),
		},
	}
	if err := f.docs.Upsert(ctx, in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	out, err := f.docs.Load(ctx, PurchaseOrder, "PO-7")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.ProjectCode != "P1" || out.SubjectCode != "3.3" || out.CounterpartyID != "SUP-1" {
		t.Errorf("header mismatch: %+v", out)
	}
	if len(out.Items) != 1 || len(out.Installments) != 2 {
		t.Fatalf("expected 1 item and 2 installments, got %d and %d", len(out.Items), len(out.Installments))
	}
	assertDecimal(t, out.TotalAmount(), "1000", "loaded total")
	if !out.OrderDate.Equal(day("2026-01-20")) {
		t.Errorf("order date = %s", out.OrderDate)
	}
}

func TestDocumentStore_DeleteUnknownDocument(t *testing.T) {
	f := newFixture(t)
	if err := f.docs.Delete(context.Background(), PurchaseOrder, "PO-404"); err == nil {
		t.Fatal("expected error deleting unknown document")
	}
}
