package routes

import (
	"net/http"

	"go.uber.org/zap"

	"detector-go/common"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error writes the envelope for a failed request. Validation sentinels are
// the caller's fault, everything else is ours.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if common.IsClientError(err) {
		status = http.StatusBadRequest
	} else {
		zap.S().Errorw("request failed", "error", err)
	}

	// headers are frozen once WriteHeader runs
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	common.SendStructResponse(w, Response{
		Success: false,
		Message: err.Error(),
	})
}

// queryNames pulls the repeatable name parameter; scoring and listing
// endpoints require at least one.
func queryNames(r *http.Request) []string {
	return r.URL.Query()["name"]
}
