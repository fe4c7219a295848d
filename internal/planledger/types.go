// Package planledger implements the budget reconciliation ledger: the
// 36-month Plan-vs-Real matrix per project, the document store feeding its
// Real side, and the validation, reconciliation and rollup engines around it.
package planledger

import (
	"time"

	"HTXErp/internal/config"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the two transactional document families.
type DocumentKind string

const (
	SalesOrder    DocumentKind = "sales"
	PurchaseOrder DocumentKind = "purchase"
)

// LineItem is one product line of a document.
type LineItem struct {
	ProductName string          `json:"product_name"`
	Spec        string          `json:"spec"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount is quantity times unit price.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Installment is one scheduled partial payment of a document.
type Installment struct {
	TermName string          `json:"term_name"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
}

// Document is a sales or purchase order: header, line items and the
// installment schedule that feeds the ledger's Real side.
type Document struct {
	Kind           DocumentKind
	Number         string
	ProjectCode    string
	CounterpartyID string
	// SubjectCode is the 3.x cost subject of a purchase order. Sales orders
	// leave it empty; they always post to the product revenue subject.
	SubjectCode string
	ContractNo  string
	OrderDate   time.Time
	TaxType     string

	Items        []LineItem
	Installments []Installment
}

// TotalAmount derives the document total from its line items. It is never
// stored independently of them.
func (d *Document) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range d.Items {
		total = total.Add(li.Amount())
	}
	return total
}

// ScheduledAmount sums the installment schedule.
func (d *Document) ScheduledAmount() decimal.Decimal {
	total := decimal.Zero
	for _, ins := range d.Installments {
		total = total.Add(ins.Amount)
	}
	return total
}

// Subject returns the ledger subject this document posts to.
func (d *Document) Subject() string {
	if d.Kind == SalesOrder {
		return config.RevenueSubjectCode
	}
	return d.SubjectCode
}

// Table names per document kind. The two families share a shape but live in
// separate tables, as the order-entry collaborators own them separately.
func (k DocumentKind) headerTable() string {
	if k == SalesOrder {
		return "sales_orders"
	}
	return "purchase_orders"
}

func (k DocumentKind) itemsTable() string {
	if k == SalesOrder {
		return "so_items"
	}
	return "po_items"
}

func (k DocumentKind) paymentsTable() string {
	if k == SalesOrder {
		return "so_payments"
	}
	return "po_payments"
}

func (k DocumentKind) numberColumn() string {
	if k == SalesOrder {
		return "so_number"
	}
	return "po_number"
}

func (k DocumentKind) counterpartyColumn() string {
	if k == SalesOrder {
		return "cust_id"
	}
	return "supplier_id"
}

// PlanEntry is one manually budgeted amount for a matrix cell.
type PlanEntry struct {
	ProjectCode string          `json:"project_code"`
	YearMonth   string          `json:"year_month"`
	SubjectCode string          `json:"cost_item"`
	PlanAmount  decimal.Decimal `json:"plan_amount"`
}

// Cell is one budget matrix cell: Plan is owned by the manual entry path,
// Real by the reconciliation engine.
type Cell struct {
	ProjectCode string          `json:"project_code"`
	YearMonth   string          `json:"year_month"`
	SubjectCode string          `json:"cost_item"`
	PlanAmount  decimal.Decimal `json:"plan_amount"`
	RealAmount  decimal.Decimal `json:"real_amount"`
}
