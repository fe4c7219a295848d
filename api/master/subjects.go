package master

import (
	"net/http"

	"HTXErp/api"
	"HTXErp/internal/subjects"
)

// GetSubjects lists the fixed cost-subject taxonomy for the planning UI.
func GetSubjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithPayload(w, true, "", subjects.All())
	}
}
