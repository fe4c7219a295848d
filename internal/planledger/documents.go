package planledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"HTXErp/internal/config"
	"HTXErp/internal/store"

	"github.com/shopspring/decimal"
)

// DocumentStore owns the transactional documents feeding the ledger. Every
// accepted write or delete reconciles the affected (project, subject) scope
// as part of the same logical operation.
type DocumentStore struct {
	store store.Store
	recon *Reconciler
}

func NewDocumentStore(st store.Store, recon *Reconciler) *DocumentStore {
	return &DocumentStore{store: st, recon: recon}
}

// Upsert validates and persists a document, replacing its line items and
// installment schedule in full (delete-then-insert, so a reduced schedule
// leaves no orphaned rows), then reconciles the scope.
//
// A reconciliation failure after the committed write is returned as a
// *ReconciliationError: the document stays committed, the scope is queued
// for the retry sweep, and Real figures are stale until replayed.
func (ds *DocumentStore) Upsert(ctx context.Context, doc *Document) error {
	limit, err := ds.counterpartyCreditLimit(ctx, doc.CounterpartyID)
	if err != nil {
		return err
	}
	if err := ValidateDocument(doc, limit); err != nil {
		return err
	}

	kind := doc.Kind
	numberCol := kind.numberColumn()

	// A re-save may move the document to another project or subject. The
	// scope it used to post to must be recomputed too, or its cell keeps a
	// Real sum no committed document backs anymore.
	prevProject, prevSubject := "", ""
	prevHeaders, err := ds.store.Get(ctx, kind.headerTable(), store.Filter{numberCol: doc.Number})
	if err != nil {
		return fmt.Errorf("load %s order %s: %w", kind, doc.Number, err)
	}
	if len(prevHeaders) > 0 {
		prevProject = store.String(prevHeaders[0], "project_code")
		prevSubject = headerSubject(kind, prevHeaders[0])
	}

	header := store.Row{
		numberCol:                 doc.Number,
		"project_code":            doc.ProjectCode,
		kind.counterpartyColumn(): doc.CounterpartyID,
		"order_date":              doc.OrderDate.Format(config.DateFormat),
		"tax_type":                doc.TaxType,
		"total_amount":            doc.TotalAmount(),
		"status":                  "Confirmed",
	}
	if kind == SalesOrder {
		header["contract_no"] = doc.ContractNo
	} else {
		header["cost_item"] = doc.SubjectCode
	}
	if err := ds.store.Upsert(ctx, kind.headerTable(), []store.Row{header}, []string{numberCol}); err != nil {
		return fmt.Errorf("save %s order %s: %w", kind, doc.Number, err)
	}

	if err := ds.store.Delete(ctx, kind.itemsTable(), store.Filter{numberCol: doc.Number}); err != nil {
		return fmt.Errorf("replace items of %s: %w", doc.Number, err)
	}
	items := make([]store.Row, 0, len(doc.Items))
	for _, li := range doc.Items {
		items = append(items, store.Row{
			numberCol:      doc.Number,
			"product_name": li.ProductName,
			"spec":         li.Spec,
			"quantity":     li.Quantity,
			"unit_price":   li.UnitPrice,
			"amount":       li.Amount(),
		})
	}
	if err := ds.store.Upsert(ctx, kind.itemsTable(), items, nil); err != nil {
		return fmt.Errorf("replace items of %s: %w", doc.Number, err)
	}

	if err := ds.store.Delete(ctx, kind.paymentsTable(), store.Filter{numberCol: doc.Number}); err != nil {
		return fmt.Errorf("replace schedule of %s: %w", doc.Number, err)
	}
	pays := make([]store.Row, 0, len(doc.Installments))
	for _, ins := range doc.Installments {
		pays = append(pays, store.Row{
			numberCol:       doc.Number,
			"term_name":     ins.TermName,
			"expected_date": ins.DueDate.Format(config.DateFormat),
			"amount":        ins.Amount,
		})
	}
	if err := ds.store.Upsert(ctx, kind.paymentsTable(), pays, nil); err != nil {
		return fmt.Errorf("replace schedule of %s: %w", doc.Number, err)
	}

	var staleErr error
	if prevProject != "" && (prevProject != doc.ProjectCode || prevSubject != doc.Subject()) {
		// Failure here is queued for the retry sweep like any other scope.
		staleErr = ds.reconcileScope(ctx, prevProject, prevSubject)
	}
	if err := ds.reconcileScope(ctx, doc.ProjectCode, doc.Subject()); err != nil {
		return err
	}
	return staleErr
}

// Delete removes a document with its items and schedule, then reconciles
// the scope so its contribution is zeroed out of the matrix.
func (ds *DocumentStore) Delete(ctx context.Context, kind DocumentKind, number string) error {
	numberCol := kind.numberColumn()
	headers, err := ds.store.Get(ctx, kind.headerTable(), store.Filter{numberCol: number})
	if err != nil {
		return fmt.Errorf("load %s order %s: %w", kind, number, err)
	}
	if len(headers) == 0 {
		return fmt.Errorf("%s order %s not found", kind, number)
	}
	projectCode := store.String(headers[0], "project_code")
	subjectCode := headerSubject(kind, headers[0])

	if err := ds.store.Delete(ctx, kind.paymentsTable(), store.Filter{numberCol: number}); err != nil {
		return fmt.Errorf("delete schedule of %s: %w", number, err)
	}
	if err := ds.store.Delete(ctx, kind.itemsTable(), store.Filter{numberCol: number}); err != nil {
		return fmt.Errorf("delete items of %s: %w", number, err)
	}
	if err := ds.store.Delete(ctx, kind.headerTable(), store.Filter{numberCol: number}); err != nil {
		return fmt.Errorf("delete %s order %s: %w", kind, number, err)
	}

	return ds.reconcileScope(ctx, projectCode, subjectCode)
}

// Load reads one document back with its items and schedule.
func (ds *DocumentStore) Load(ctx context.Context, kind DocumentKind, number string) (*Document, error) {
	numberCol := kind.numberColumn()
	headers, err := ds.store.Get(ctx, kind.headerTable(), store.Filter{numberCol: number})
	if err != nil {
		return nil, fmt.Errorf("load %s order %s: %w", kind, number, err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%s order %s not found", kind, number)
	}
	h := headers[0]

	doc := &Document{
		Kind:           kind,
		Number:         number,
		ProjectCode:    store.String(h, "project_code"),
		CounterpartyID: store.String(h, kind.counterpartyColumn()),
		ContractNo:     store.String(h, "contract_no"),
		OrderDate:      store.Time(h, "order_date"),
		TaxType:        store.String(h, "tax_type"),
	}
	if kind == PurchaseOrder {
		doc.SubjectCode = store.String(h, "cost_item")
	}

	items, err := ds.store.Get(ctx, kind.itemsTable(), store.Filter{numberCol: number})
	if err != nil {
		return nil, fmt.Errorf("load items of %s: %w", number, err)
	}
	for _, r := range items {
		doc.Items = append(doc.Items, LineItem{
			ProductName: store.String(r, "product_name"),
			Spec:        store.String(r, "spec"),
			Quantity:    store.Decimal(r, "quantity"),
			UnitPrice:   store.Decimal(r, "unit_price"),
		})
	}

	pays, err := ds.store.Get(ctx, kind.paymentsTable(), store.Filter{numberCol: number})
	if err != nil {
		return nil, fmt.Errorf("load schedule of %s: %w", number, err)
	}
	for _, r := range pays {
		doc.Installments = append(doc.Installments, Installment{
			TermName: store.String(r, "term_name"),
			DueDate:  store.Time(r, "expected_date"),
			Amount:   store.Decimal(r, "amount"),
		})
	}
	return doc, nil
}

// List returns the document headers of one kind, optionally filtered by project.
func (ds *DocumentStore) List(ctx context.Context, kind DocumentKind, projectCode string) ([]store.Row, error) {
	filter := store.Filter{}
	if projectCode != "" {
		filter["project_code"] = projectCode
	}
	rows, err := ds.store.Get(ctx, kind.headerTable(), filter)
	if err != nil {
		return nil, fmt.Errorf("list %s orders: %w", kind, err)
	}
	return rows, nil
}

// headerSubject reads the ledger subject a stored header posts to.
func headerSubject(kind DocumentKind, h store.Row) string {
	if kind == PurchaseOrder {
		return store.String(h, "cost_item")
	}
	return config.RevenueSubjectCode
}

func (ds *DocumentStore) counterpartyCreditLimit(ctx context.Context, partnerID string) (decimal.Decimal, error) {
	if partnerID == "" {
		return decimal.Zero, nil
	}
	rows, err := ds.store.Get(ctx, "partners", store.Filter{"partner_id": partnerID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("lookup partner %s: %w", partnerID, err)
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return store.Decimal(rows[0], "credit_limit"), nil
}

func (ds *DocumentStore) reconcileScope(ctx context.Context, projectCode, subjectCode string) error {
	err := ds.recon.Reconcile(ctx, projectCode, subjectCode)
	if err == nil {
		return nil
	}
	log.Printf("[ERROR] reconcile %s/%s failed, queueing retry: %v", projectCode, subjectCode, err)
	queueErr := ds.store.Upsert(ctx, "recon_retry", []store.Row{{
		"project_code": projectCode,
		"cost_item":    subjectCode,
		"last_error":   err.Error(),
		"failed_at":    time.Now().UTC().Format(time.RFC3339),
	}}, []string{"project_code", "cost_item"})
	if queueErr != nil {
		log.Printf("[ERROR] could not queue reconciliation retry for %s/%s: %v", projectCode, subjectCode, queueErr)
	}
	return err
}
