package planledger

import (
	"context"
	"testing"
	"time"

	"HTXErp/internal/store"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	store   *store.MemoryStore
	recon   *Reconciler
	docs    *DocumentStore
	planner *Planner
	rollup  *RollupEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemoryStore()
	recon := NewReconciler(st)
	return &fixture{
		store:   st,
		recon:   recon,
		docs:    NewDocumentStore(st, recon),
		planner: NewPlanner(st),
		rollup:  NewRollupEngine(st),
	}
}

func (f *fixture) addPartner(t *testing.T, id, name, ptype, creditLimit string) {
	t.Helper()
	err := f.store.Upsert(context.Background(), "partners", []store.Row{{
		"partner_id":   id,
		"name":         name,
		"type":         ptype,
		"credit_limit": dec(creditLimit),
	}}, []string{"partner_id"})
	if err != nil {
		t.Fatalf("add partner: %v", err)
	}
}

func (f *fixture) addProject(t *testing.T, code, name, custID, startDate string) {
	t.Helper()
	ctx := context.Background()
	err := f.store.Upsert(ctx, "projects", []store.Row{{
		"project_code": code,
		"project_name": name,
		"cust_id":      custID,
		"start_date":   startDate,
	}}, []string{"project_code"})
	if err != nil {
		t.Fatalf("add project: %v", err)
	}
	if err := CreateMonthAxis(ctx, f.store, code, day(startDate)); err != nil {
		t.Fatalf("create month axis: %v", err)
	}
}

// purchaseDoc builds a balanced single-line purchase order whose schedule
// equals its total.
func purchaseDoc(number, project, subject string, installments ...Installment) *Document {
	total := decimal.Zero
	for _, ins := range installments {
		total = total.Add(ins.Amount)
	}
	return &Document{
		Kind:        PurchaseOrder,
		Number:      number,
		ProjectCode: project,
		SubjectCode: subject,
		OrderDate:   day("2026-01-05"),
		TaxType:     "Inclusive",
		Items: []LineItem{
			{ProductName: "Material", Quantity: dec("1"), UnitPrice: total},
		},
		Installments: installments,
	}
}

func salesDoc(number, project, custID string, installments ...Installment) *Document {
	total := decimal.Zero
	for _, ins := range installments {
		total = total.Add(ins.Amount)
	}
	return &Document{
		Kind:           SalesOrder,
		Number:         number,
		ProjectCode:    project,
		CounterpartyID: custID,
		ContractNo:     "C-" + number,
		OrderDate:      day("2026-01-05"),
		TaxType:        "Inclusive",
		Items: []LineItem{
			{ProductName: "Machine", Quantity: dec("1"), UnitPrice: total},
		},
		Installments: installments,
	}
}

func inst(term, due, amount string) Installment {
	return Installment{TermName: term, DueDate: day(due), Amount: dec(amount)}
}

// cell fetches one matrix cell, failing the test when it is absent.
func (f *fixture) cell(t *testing.T, project, month, subject string) store.Row {
	t.Helper()
	rows, err := f.store.Get(context.Background(), "project_matrix", store.Filter{
		"project_code": project,
		"year_month":   month,
		"cost_item":    subject,
	})
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one cell (%s, %s, %s), got %d", project, month, subject, len(rows))
	}
	return rows[0]
}

func (f *fixture) cellCount(t *testing.T, project, subject string) int {
	t.Helper()
	rows, err := f.store.Get(context.Background(), "project_matrix", store.Filter{
		"project_code": project,
		"cost_item":    subject,
	})
	if err != nil {
		t.Fatalf("get cells: %v", err)
	}
	return len(rows)
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}
