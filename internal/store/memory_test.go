package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemoryStore_UpsertMergesProvidedColumnsOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	keys := []string{"project_code", "year_month", "cost_item"}

	err := s.Upsert(ctx, "project_matrix", []Row{{
		"project_code": "P1",
		"year_month":   "2026-01-01",
		"cost_item":    "3.1",
		"plan_amount":  decimal.RequireFromString("500"),
	}}, keys)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// A second writer touches only real_amount; plan_amount must survive.
	err = s.Upsert(ctx, "project_matrix", []Row{{
		"project_code": "P1",
		"year_month":   "2026-01-01",
		"cost_item":    "3.1",
		"real_amount":  decimal.RequireFromString("300"),
	}}, keys)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := s.Get(ctx, "project_matrix", Filter{"project_code": "P1"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one merged row, got %d", len(rows))
	}
	if !Decimal(rows[0], "plan_amount").Equal(decimal.RequireFromString("500")) {
		t.Errorf("plan_amount = %s, want 500", Decimal(rows[0], "plan_amount"))
	}
	if !Decimal(rows[0], "real_amount").Equal(decimal.RequireFromString("300")) {
		t.Errorf("real_amount = %s, want 300", Decimal(rows[0], "real_amount"))
	}
}

func TestMemoryStore_GetReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Upsert(ctx, "partners", []Row{{"partner_id": "X", "name": "Acme"}}, []string{"partner_id"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rows, _ := s.Get(ctx, "partners", nil)
	rows[0]["name"] = "Mutated"

	again, _ := s.Get(ctx, "partners", Filter{"partner_id": "X"})
	if String(again[0], "name") != "Acme" {
		t.Errorf("stored row was mutated through a Get result")
	}
}

func TestMemoryStore_DeleteByFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seed := []Row{
		{"po_number": "PO-1", "term_name": "Deposit"},
		{"po_number": "PO-1", "term_name": "Balance"},
		{"po_number": "PO-2", "term_name": "Full"},
	}
	if err := s.Upsert(ctx, "po_payments", seed, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.Delete(ctx, "po_payments", Filter{"po_number": "PO-1"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ := s.Get(ctx, "po_payments", nil)
	if len(rows) != 1 || String(rows[0], "po_number") != "PO-2" {
		t.Fatalf("expected only PO-2 to survive, got %+v", rows)
	}
}

func TestMemoryStore_DecimalFilterMatchesByValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Upsert(ctx, "cells", []Row{
		{"id": "a", "amount": decimal.RequireFromString("10.00")},
	}, []string{"id"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// 10 and 10.00 differ in exponent but are the same value.
	rows, _ := s.Get(ctx, "cells", Filter{"amount": decimal.RequireFromString("10")})
	if len(rows) != 1 {
		t.Fatalf("decimal filter should match by value, got %d rows", len(rows))
	}
}
