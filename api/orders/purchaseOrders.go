package orders

import (
	"encoding/json"
	"net/http"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/planledger"

	"github.com/gorilla/mux"
)

func ListPurchaseOrders(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := docs.List(r.Context(), planledger.PurchaseOrder, r.URL.Query().Get("project_code"))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery)
			return
		}
		api.RespondWithPayload(w, true, "", rows)
	}
}

func SavePurchaseOrder(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		doc, err := req.toDocument(planledger.PurchaseOrder)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondAfterWrite(w, docs.Upsert(r.Context(), doc))
	}
}

func GetPurchaseOrder(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := mux.Vars(r)["po_number"]
		doc, err := docs.Load(r.Context(), planledger.PurchaseOrder, number)
		if err != nil {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrDocumentNotFound)
			return
		}
		api.RespondWithPayload(w, true, "", doc)
	}
}

func DeletePurchaseOrder(docs *planledger.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := mux.Vars(r)["po_number"]
		respondAfterWrite(w, docs.Delete(r.Context(), planledger.PurchaseOrder, number))
	}
}
