package master

import (
	"encoding/json"
	"net/http"
	"time"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/config"
	"HTXErp/internal/planledger"
	"HTXErp/internal/store"

	"github.com/gorilla/mux"
)

// ProjectRequest is the request shape for project create/update.
type ProjectRequest struct {
	ProjectCode string `json:"project_code"`
	ProjectName string `json:"project_name"`
	CustID      string `json:"cust_id"`
	PMOwner     string `json:"pm_owner"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

func GetProjects(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.Filter{}
		if status := r.URL.Query().Get("status"); status != "" {
			filter["status"] = status
		}
		rows, err := st.Get(r.Context(), "projects", filter)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		api.RespondWithPayload(w, true, "", rows)
	}
}

// CreateProject stores the project and generates its month axis once. The
// axis is persisted: later edits to start_date do not move existing buckets.
func CreateProject(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if req.ProjectCode == "" || req.ProjectName == "" {
			api.RespondWithError(w, http.StatusBadRequest, "project_code and project_name are required")
			return
		}
		start, err := time.Parse(config.DateFormat, req.StartDate)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		status := req.Status
		if status == "" {
			status = "Active"
		}
		ctx := r.Context()
		err = st.Upsert(ctx, "projects", []store.Row{{
			"project_code": req.ProjectCode,
			"project_name": req.ProjectName,
			"cust_id":      req.CustID,
			"pm_owner":     req.PMOwner,
			"start_date":   req.StartDate,
			"end_date":     req.EndDate,
			"status":       status,
		}}, []string{"project_code"})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		if err := planledger.CreateMonthAxis(ctx, st, req.ProjectCode, start); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

func UpdateProject(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["project_code"]
		existing, err := st.Get(r.Context(), "projects", store.Filter{"project_code": code})
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		if len(existing) == 0 {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrProjectNotFound)
			return
		}
		var req ProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		// The month axis stays as generated at creation.
		row := store.Row{"project_code": code}
		if req.ProjectName != "" {
			row["project_name"] = req.ProjectName
		}
		if req.CustID != "" {
			row["cust_id"] = req.CustID
		}
		if req.PMOwner != "" {
			row["pm_owner"] = req.PMOwner
		}
		if req.StartDate != "" {
			row["start_date"] = req.StartDate
		}
		if req.EndDate != "" {
			row["end_date"] = req.EndDate
		}
		if req.Status != "" {
			row["status"] = req.Status
		}
		if err := st.Upsert(r.Context(), "projects", []store.Row{row}, []string{"project_code"}); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB)
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
