package orders

import (
	"log"
	"net/http"

	"HTXErp/internal/planledger"
	"HTXErp/internal/store"

	"github.com/gorilla/mux"
)

func StartOrdersService(st store.Store, docs *planledger.DocumentStore) {
	router := mux.NewRouter()

	router.HandleFunc("/orders/sales", ListSalesOrders(docs)).Methods("GET")
	router.HandleFunc("/orders/sales", SaveSalesOrder(st, docs)).Methods("POST")
	router.HandleFunc("/orders/sales/{so_number}", GetSalesOrder(docs)).Methods("GET")
	router.HandleFunc("/orders/sales/{so_number}", DeleteSalesOrder(docs)).Methods("DELETE")

	router.HandleFunc("/orders/purchase", ListPurchaseOrders(docs)).Methods("GET")
	router.HandleFunc("/orders/purchase", SavePurchaseOrder(docs)).Methods("POST")
	router.HandleFunc("/orders/purchase/{po_number}", GetPurchaseOrder(docs)).Methods("GET")
	router.HandleFunc("/orders/purchase/{po_number}", DeletePurchaseOrder(docs)).Methods("DELETE")

	log.Println("Orders Service started on :3143")
	err := http.ListenAndServe(":3143", router)
	if err != nil {
		log.Fatalf("Orders Service failed: %v", err)
	}
}
