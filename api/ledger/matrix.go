package ledger

import (
	"encoding/json"
	"fmt"
	"net/http"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/planledger"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// PlanEntryRequest carries one manual plan cell; the amount is a string so
// the decimal value survives the JSON boundary.
type PlanEntryRequest struct {
	ProjectCode string `json:"project_code"`
	YearMonth   string `json:"year_month"`
	SubjectCode string `json:"cost_item"`
	PlanAmount  string `json:"plan_amount"`
}

func GetMatrix(planner *planledger.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["project_code"]
		if code == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrProjectCodeRequired)
			return
		}
		view, err := planner.Matrix(r.Context(), code)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", view)
	}
}

// SavePlan writes manual plan cells. Only plan_amount is touched; the
// reconciled Real side of each cell is left as is.
func SavePlan(planner *planledger.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Entries []PlanEntryRequest `json:"entries"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if len(req.Entries) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "entries is empty")
			return
		}
		entries := make([]planledger.PlanEntry, 0, len(req.Entries))
		for i, e := range req.Entries {
			amount, err := decimal.NewFromString(e.PlanAmount)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("entries[%d].plan_amount is not a number", i))
				return
			}
			entries = append(entries, planledger.PlanEntry{
				ProjectCode: e.ProjectCode,
				YearMonth:   e.YearMonth,
				SubjectCode: e.SubjectCode,
				PlanAmount:  amount,
			})
		}
		if err := planner.SavePlan(r.Context(), entries); err != nil {
			api.RespondWithDomainError(w, err)
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
