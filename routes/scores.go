package routes

import (
	"context"
	"fmt"
	"net/http"

	"detector-go/common"
	"detector-go/modules"
)

type scoreEngine interface {
	ReportScore(ctx context.Context, names []string) ([]modules.ReportScore, error)
	FeedbackScore(ctx context.Context, names []string) ([]modules.FeedbackScore, error)
}

type Scores struct {
	Engine scoreEngine
}

// GetReportScore handles GET /v2/player/report/score. Unknown names produce
// no rows, never an error.
func (h *Scores) GetReportScore(w http.ResponseWriter, r *http.Request) {
	names := queryNames(r)
	if len(names) == 0 {
		Error(w, fmt.Errorf("name parameter is required: %w", common.ErrValidation))
		return
	}

	rows, err := h.Engine.ReportScore(r.Context(), names)
	if err != nil {
		Error(w, err)
		return
	}
	common.SendStructResponse(w, rows)
}

// GetFeedbackScore handles GET /v2/player/feedback/score.
func (h *Scores) GetFeedbackScore(w http.ResponseWriter, r *http.Request) {
	names := queryNames(r)
	if len(names) == 0 {
		Error(w, fmt.Errorf("name parameter is required: %w", common.ErrValidation))
		return
	}

	rows, err := h.Engine.FeedbackScore(r.Context(), names)
	if err != nil {
		Error(w, err)
		return
	}
	common.SendStructResponse(w, rows)
}
