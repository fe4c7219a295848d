package dash

import (
	"log"
	"net/http"

	"HTXErp/api"
	"HTXErp/api/constants"
	"HTXErp/internal/planledger"

	"github.com/gorilla/mux"
)

func StartDashService(rollup *planledger.RollupEngine) {
	router := mux.NewRouter()

	router.HandleFunc("/dash/company", GetCompanyRollup(rollup)).Methods("GET")
	router.HandleFunc("/dash/projects/{project_code}", GetProjectRollup(rollup)).Methods("GET")

	log.Println("Dash Service started on :4143")
	err := http.ListenAndServe(":4143", router)
	if err != nil {
		log.Fatalf("Dash Service failed: %v", err)
	}
}

// GetCompanyRollup returns the company line plus the per-project rollups it
// was summed from.
func GetCompanyRollup(rollup *planledger.RollupEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company, perProject, err := rollup.CompanyRollup(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"company":  company,
			"projects": perProject,
		})
	}
}

func GetProjectRollup(rollup *planledger.RollupEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["project_code"]
		if code == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrProjectCodeRequired)
			return
		}
		result, err := rollup.ProjectRollup(r.Context(), code)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", result)
	}
}
