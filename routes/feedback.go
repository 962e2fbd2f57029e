package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"detector-go/common"
	"detector-go/modules"
)

type feedbackSubmitter interface {
	Submit(ctx context.Context, in modules.FeedbackInput) error
}

type feedbackLister interface {
	GetFeedbackResponses(ctx context.Context, names []string) ([]modules.FeedbackResponse, error)
}

type Feedback struct {
	Module feedbackSubmitter
	Lister feedbackLister
}

// PostFeedback handles POST /v2/player/feedback.
func (h *Feedback) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var input modules.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		common.SendStructResponse(w, Response{Message: "invalid data"})
		return
	}

	if err := h.Module.Submit(r.Context(), input); err != nil {
		Error(w, err)
		return
	}

	common.SendStructResponse(w, Response{
		Success: true,
		Message: "Feedback submitted successfully",
	})
}

// GetFeedback handles GET /v2/player/feedback, listing the votes cast by the
// given players.
func (h *Feedback) GetFeedback(w http.ResponseWriter, r *http.Request) {
	names := queryNames(r)
	if len(names) == 0 {
		Error(w, fmt.Errorf("name parameter is required: %w", common.ErrValidation))
		return
	}

	responses, err := h.Lister.GetFeedbackResponses(r.Context(), names)
	if err != nil {
		Error(w, err)
		return
	}
	common.SendStructResponse(w, responses)
}
