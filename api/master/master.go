package master

import (
	"log"
	"net/http"

	"HTXErp/internal/store"

	"github.com/gorilla/mux"
)

func StartMasterService(st store.Store) {
	router := mux.NewRouter()

	router.HandleFunc("/master/partners", GetPartners(st)).Methods("GET")
	router.HandleFunc("/master/partners", CreatePartner(st)).Methods("POST")
	router.HandleFunc("/master/partners/{partner_id}", UpdatePartner(st)).Methods("PUT")
	router.HandleFunc("/master/partners/{partner_id}", DeletePartner(st)).Methods("DELETE")

	router.HandleFunc("/master/projects", GetProjects(st)).Methods("GET")
	router.HandleFunc("/master/projects", CreateProject(st)).Methods("POST")
	router.HandleFunc("/master/projects/{project_code}", UpdateProject(st)).Methods("PUT")

	router.HandleFunc("/master/subjects", GetSubjects()).Methods("GET")

	router.HandleFunc("/master/settings", GetCompanySettings(st)).Methods("GET")
	router.HandleFunc("/master/settings", SaveCompanySettings(st)).Methods("POST")

	log.Println("Master Service started on :2143")
	err := http.ListenAndServe(":2143", router)
	if err != nil {
		log.Fatalf("Master Service failed: %v", err)
	}
}
