package master

import (
	"encoding/json"
	"net/http"
	"strings"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/store"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// PartnerRequest is the request shape for partner create/update.
type PartnerRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Nationality    string `json:"nationality"`
	TaxID          string `json:"tax_id"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	CreditLimit    string `json:"credit_limit"`
	FinanceContact string `json:"finance_contact"`
	SalesContact   string `json:"sales_contact"`
	TradeItems     string `json:"trade_items"`
	Remarks        string `json:"remarks"`
}

func (p *PartnerRequest) toRow(id string) (store.Row, error) {
	limit := decimal.Zero
	if p.CreditLimit != "" {
		var err error
		limit, err = decimal.NewFromString(p.CreditLimit)
		if err != nil {
			return nil, err
		}
	}
	return store.Row{
		"partner_id":      id,
		"name":            p.Name,
		"type":            p.Type,
		"nationality":     p.Nationality,
		"tax_id":          p.TaxID,
		"address":         p.Address,
		"phone":           p.Phone,
		"email":           p.Email,
		"credit_limit":    limit,
		"finance_contact": p.FinanceContact,
		"sales_contact":   p.SalesContact,
		"trade_items":     p.TradeItems,
		"remarks":         p.Remarks,
	}, nil
}

// GetPartners lists partners, optionally filtered by type or a name search.
func GetPartners(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{}
		if ptype := r.URL.Query().Get("type"); ptype != "" {
			filter["type"] = ptype
		}
		rows, err := st.Get(r.Context(), "partners", filter)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
			matched := make([]store.Row, 0, len(rows))
			for _, row := range rows {
				if strings.Contains(strings.ToLower(store.String(row, "name")), q) {
					matched = append(matched, row)
				}
			}
			rows = matched
		}
		api.RespondWithPayload(w, true, "", rows)
	}
}

func CreatePartner(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PartnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.Name == "" || req.Type == "" {
			api.RespondWithError(w, http.StatusBadRequest, "name and type are required")
			return
		}
		id := uuid.New().String()
		row, err := req.toRow(id)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "invalid credit_limit")
			return
		}
		if err := st.Upsert(r.Context(), "partners", []store.Row{row}, []string{"partner_id"}); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		api.RespondWithPayload(w, true, "", map[string]string{"partner_id": id})
	}
}

func UpdatePartner(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["partner_id"]
		if id == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrPartnerIDRequired)
			return
		}
		existing, err := st.Get(r.Context(), "partners", store.Filter{"partner_id": id})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		if len(existing) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrPartnerNotFound)
			return
		}
		var req PartnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		row, err := req.toRow(id)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "invalid credit_limit")
			return
		}
		if err := st.Upsert(r.Context(), "partners", []store.Row{row}, []string{"partner_id"}); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

func DeletePartner(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["partner_id"]
		if id == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrPartnerIDRequired)
			return
		}
		if err := st.Delete(r.Context(), "partners", store.Filter{"partner_id": id}); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
