package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"HTXErp/api/constants"
	"HTXErp/internal/planledger"
	"HTXErp/internal/subjects"
)

// RespondWithError sends a JSON error envelope with the given status.
func RespondWithError(w http.ResponseWriter, status int, errMsg string) {
	log.Println("[ERROR]", errMsg)
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

// RespondWithResult sends a consistent JSON response for success or error
func RespondWithResult(w http.ResponseWriter, success bool, errMsg string) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if success {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	} else {
		log.Println("[ERROR] RespondWithResult", errMsg)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": errMsg})
	}
}

// RespondWithPayload sends a consistent JSON response and includes an arbitrary payload
func RespondWithPayload(w http.ResponseWriter, success bool, errMsg string, payload interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	resp := map[string]interface{}{"success": success}
	if !success && errMsg != "" {
		resp["error"] = errMsg
		log.Println("[ERROR] RespondWithPayload", errMsg)
	}
	if payload != nil {
		resp["rows"] = payload
	}
	json.NewEncoder(w).Encode(resp)
}

// RespondWithDomainError maps ledger validation failures to 422 with the
// failure detail in the envelope, and everything else to 500.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	var mismatch *planledger.ScheduleMismatchError
	var credit *planledger.CreditLimitExceededError
	var missing *planledger.MissingFieldError

	switch {
	case errors.As(err, &mismatch):
		respondDetail(w, http.StatusUnprocessableEntity, constants.ErrScheduleOutOfBalance, map[string]interface{}{
			"total":     mismatch.Total,
			"scheduled": mismatch.Scheduled,
			"diff":      mismatch.Diff,
		})
	case errors.As(err, &credit):
		respondDetail(w, http.StatusUnprocessableEntity, constants.ErrCreditLimitExceeded, map[string]interface{}{
			"credit_limit": credit.Limit,
			"order_total":  credit.Amount,
		})
	case errors.As(err, &missing):
		RespondWithError(w, http.StatusBadRequest, "missing required field: "+missing.Field)
	case errors.Is(err, subjects.ErrInvalidSubject):
		RespondWithError(w, http.StatusBadRequest, constants.ErrUnknownSubject)
	default:
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondDetail(w http.ResponseWriter, status int, errMsg string, detail map[string]interface{}) {
	log.Println("[ERROR]", errMsg)
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
		"detail":  detail,
	})
}
