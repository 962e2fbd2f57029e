package routes

import (
	"context"
	"fmt"
	"net/http"

	"detector-go/common"
	"detector-go/database/schemas"
)

type predictionGetter interface {
	GetPredictions(ctx context.Context, names []string) ([]schemas.Prediction, error)
}

type Predictions struct {
	Module predictionGetter
}

// GetPredictions handles GET /v2/prediction.
func (h *Predictions) GetPredictions(w http.ResponseWriter, r *http.Request) {
	names := queryNames(r)
	if len(names) == 0 {
		Error(w, fmt.Errorf("name parameter is required: %w", common.ErrValidation))
		return
	}

	predictions, err := h.Module.GetPredictions(r.Context(), names)
	if err != nil {
		Error(w, err)
		return
	}
	common.SendStructResponse(w, predictions)
}
