package common

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func SendStructResponse(w http.ResponseWriter, res any) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(res)
	if err != nil {
		zap.S().Errorw("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write(response)
}
