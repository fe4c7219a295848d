package orders

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"HTXErp/api"
	"HTXErp/internal/config"
	"HTXErp/internal/planledger"

	"github.com/shopspring/decimal"
)

// LineItemRequest and InstallmentRequest carry amounts as strings so the
// decimal values survive the JSON boundary without float rounding.
type LineItemRequest struct {
	ProductName string `json:"product_name"`
	Spec        string `json:"spec"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type InstallmentRequest struct {
	TermName string `json:"term_name"`
	DueDate  string `json:"due_date"`
	Amount   string `json:"amount"`
}

// DocumentRequest is the request shape shared by sales and purchase orders.
type DocumentRequest struct {
	Number         string               `json:"number"`
	ProjectCode    string               `json:"project_code"`
	CounterpartyID string               `json:"counterparty_id"`
	ContractNo     string               `json:"contract_no"`
	SubjectCode    string               `json:"cost_item"`
	OrderDate      string               `json:"order_date"`
	TaxType        string               `json:"tax_type"`
	Items          []LineItemRequest    `json:"items"`
	Installments   []InstallmentRequest `json:"installments"`
}

func (req *DocumentRequest) toDocument(kind planledger.DocumentKind) (*planledger.Document, error) {
	doc := &planledger.Document{
		Kind:           kind,
		Number:         req.Number,
		ProjectCode:    req.ProjectCode,
		CounterpartyID: req.CounterpartyID,
		ContractNo:     req.ContractNo,
		SubjectCode:    req.SubjectCode,
		TaxType:        req.TaxType,
	}
	if req.OrderDate != "" {
		d, err := time.Parse(config.DateFormat, req.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("order_date must be YYYY-MM-DD")
		}
		doc.OrderDate = d
	}
	for i, it := range req.Items {
		qty, err := decimal.NewFromString(it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("items[%d].quantity is not a number", i)
		}
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("items[%d].unit_price is not a number", i)
		}
		doc.Items = append(doc.Items, planledger.LineItem{
			ProductName: it.ProductName,
			Spec:        it.Spec,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	for i, ins := range req.Installments {
		due, err := time.Parse(config.DateFormat, ins.DueDate)
		if err != nil {
			return nil, fmt.Errorf("installments[%d].due_date must be YYYY-MM-DD", i)
		}
		amount, err := decimal.NewFromString(ins.Amount)
		if err != nil {
			return nil, fmt.Errorf("installments[%d].amount is not a number", i)
		}
		doc.Installments = append(doc.Installments, planledger.Installment{
			TermName: ins.TermName,
			DueDate:  due,
			Amount:   amount,
		})
	}
	return doc, nil
}

// respondAfterWrite finishes an order write. A reconciliation failure after
// the committed write is reported as accepted-with-warning: the scope is
// already queued for the retry sweep.
func respondAfterWrite(w http.ResponseWriter, err error) {
	if err == nil {
		api.RespondWithResult(w, true, "")
		return
	}
	var recon *planledger.ReconciliationError
	if errors.As(err, &recon) {
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"recon_queued": true,
			"detail":       recon.Error(),
		})
		return
	}
	api.RespondWithDomainError(w, err)
}
