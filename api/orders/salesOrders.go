package orders

import (
	"encoding/json"
	"net/http"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/planledger"
	"HTXErp/internal/store"

	"github.com/gorilla/mux"
)

func ListSalesOrders(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := docs.List(r.Context(), planledger.SalesOrder, r.URL.Query().Get("project_code"))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		api.RespondWithPayload(w, true, "", rows)
	}
}

// SaveSalesOrder upserts a sales order. When the request names no customer,
// the project's customer is used, so revenue stays tied to the project owner.
func SaveSalesOrder(st store.Store, docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		doc, err := req.toDocument(planledger.SalesOrder)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if doc.CounterpartyID == "" && doc.ProjectCode != "" {
			projects, err := st.Get(r.Context(), "projects", store.Filter{"project_code": doc.ProjectCode})
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
				return
			}
			if len(projects) > 0 {
				doc.CounterpartyID = store.String(projects[0], "cust_id")
			}
		}
		respondAfterWrite(w, docs.Upsert(r.Context(), doc))
	}
}

func GetSalesOrder(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := mux.Vars(r)["so_number"]
		doc, err := docs.Load(r.Context(), planledger.SalesOrder, number)
		if err != nil {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrDocumentNotFound)
			return
		}
		api.RespondWithPayload(w, true, "", doc)
	}
}

func DeleteSalesOrder(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := mux.Vars(r)["so_number"]
		respondAfterWrite(w, docs.Delete(r.Context(), planledger.SalesOrder, number))
	}
}
