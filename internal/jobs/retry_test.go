package jobs

import (
	"context"
	"testing"
	"time"

	"HTXErp/internal/planledger"
	"HTXErp/internal/store"

	"github.com/shopspring/decimal"
)

func seedScope(t *testing.T, st *store.MemoryStore, project, subject string) {
	t.Helper()
	ctx := context.Background()
	err := st.Upsert(ctx, "purchase_orders", []store.Row{{
		"po_number":    "PO-1",
		"project_code": project,
		"cost_item":    subject,
		"status":       "Confirmed",
	}}, []string{"po_number"})
	if err != nil {
		t.Fatalf("seed header: %v", err)
	}
	err = st.Upsert(ctx, "po_payments", []store.Row{{
		"po_number":     "PO-1",
		"term_name":     "Full",
		"expected_date": "2026-02-10",
		"amount":        decimal.RequireFromString("400"),
	}}, nil)
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func queueScope(t *testing.T, st *store.MemoryStore, project, subject string) {
	t.Helper()
	err := st.Upsert(context.Background(), "recon_retry", []store.Row{{
		"project_code": project,
		"cost_item":    subject,
		"last_error":   "connection refused",
		"failed_at":    time.Now().UTC().Format(time.RFC3339),
	}}, []string{"project_code", "cost_item"})
	if err != nil {
		t.Fatalf("queue scope: %v", err)
	}
}

func TestProcessReconRetries_ClearsQueuedScope(t *testing.T) {
	st := store.NewMemoryStore()
	recon := planledger.NewReconciler(st)
	seedScope(t, st, "P1", "3.1")
	queueScope(t, st, "P1", "3.1")

	if err := ProcessReconRetries(st, recon, 10); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	queue, err := st.Get(context.Background(), "recon_retry", nil)
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(queue) != 0 {
		t.Fatalf("expected empty retry queue, got %d rows", len(queue))
	}

	cells, err := st.Get(context.Background(), "project_matrix", store.Filter{
		"project_code": "P1",
		"cost_item":    "3.1",
	})
	if err != nil {
		t.Fatalf("get cells: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("expected one reconciled cell, got %d", len(cells))
	}
	got := store.Decimal(cells[0], "real_amount")
	if !got.Equal(decimal.RequireFromString("400")) {
		t.Errorf("real_amount = %s, want 400", got)
	}
}

func TestProcessReconRetries_EmptyQueueIsNoop(t *testing.T) {
	st := store.NewMemoryStore()
	recon := planledger.NewReconciler(st)
	if err := ProcessReconRetries(st, recon, 10); err != nil {
		t.Fatalf("sweep on empty queue: %v", err)
	}
}

func TestProcessReconRetries_HonorsBatchSize(t *testing.T) {
	st := store.NewMemoryStore()
	recon := planledger.NewReconciler(st)
	seedScope(t, st, "P1", "3.1")
	queueScope(t, st, "P1", "3.1")
	queueScope(t, st, "P2", "3.1")

	if err := ProcessReconRetries(st, recon, 1); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	queue, err := st.Get(context.Background(), "recon_retry", nil)
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	if len(queue) != 1 {
		t.Fatalf("expected one scope left after batched sweep, got %d", len(queue))
	}
}
