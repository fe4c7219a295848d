package ledger

import (
	"log"
	"net/http"

	"HTXErp/internal/planledger"

	"github.com/gorilla/mux"
)

func StartLedgerService(planner *planledger.Planner) {
	router := mux.NewRouter()

	router.HandleFunc("/ledger/matrix/{project_code}", GetMatrix(planner)).Methods("GET")
	router.HandleFunc("/ledger/plan", SavePlan(planner)).Methods("POST")
	router.HandleFunc("/ledger/plan/upload", UploadPlan(planner)).Methods("POST")

	log.Println("Ledger Service started on :5143")
	err := http.ListenAndServe(":5143", router)
	if err != nil {
		log.Fatalf("Ledger Service failed: %v", err)
	}
}
