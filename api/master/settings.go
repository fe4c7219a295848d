package master

import (
	"encoding/json"
	"net/http"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/store"
)

// company_settings is a single-row table keyed by a fixed id.
const settingsRowID = "company"

// CompanySettingsRequest is the editable company profile used on document
// headers and footers.
type CompanySettingsRequest struct {
	CompanyNameZh string `json:"company_name_zh"`
	CompanyNameEn string `json:"company_name_en"`
	TaxID         string `json:"tax_id"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	BankName      string `json:"bank_name"`
	BankAccount   string `json:"bank_account"`
}

func GetCompanySettings(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := st.Get(r.Context(), "company_settings", store.Filter{"settings_id": settingsRowID})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		if len(rows) == 0 {
			api.RespondWithPayload(w, true, "", map[string]interface{}{})
			return
		}
		api.RespondWithPayload(w, true, "", rows[0])
	}
}

func SaveCompanySettings(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompanySettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		err := st.Upsert(r.Context(), "company_settings", []store.Row{{
			"settings_id":     settingsRowID,
			"company_name_zh": req.CompanyNameZh,
			"company_name_en": req.CompanyNameEn,
			"tax_id":          req.TaxID,
			"phone":           req.Phone,
			"address":         req.Address,
			"bank_name":       req.BankName,
			"bank_account":    req.BankAccount,
		}}, []string{"settings_id"})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
