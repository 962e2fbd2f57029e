package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"detector-go/common"
	"detector-go/modules"
)

type reportIngester interface {
	Ingest(ctx context.Context, detections []modules.Detection) (int, error)
}

type Reports struct {
	Ingest reportIngester
}

// PostReports handles POST /v2/report. The whole batch is validated before
// anything is forwarded; any bad record rejects the submission.
func (h *Reports) PostReports(w http.ResponseWriter, r *http.Request) {
	var detections []modules.Detection
	if err := json.NewDecoder(r.Body).Decode(&detections); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		common.SendStructResponse(w, Response{Message: "invalid data"})
		return
	}

	if _, err := h.Ingest.Ingest(r.Context(), detections); err != nil {
		Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	common.SendStructResponse(w, Response{Success: true, Message: "ok"})
}
