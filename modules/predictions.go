package modules

import (
	"context"

	"github.com/uptrace/bun"

	"detector-go/database/schemas"
)

// FeedbackResponse is one row of the per-player feedback listing.
type FeedbackResponse struct {
	PlayerName    string  `json:"player_name"`
	Vote          int     `json:"vote"`
	Prediction    string  `json:"prediction"`
	Confidence    float64 `json:"confidence"`
	FeedbackText  *string `json:"feedback_text"`
	ProposedLabel *string `json:"proposed_label"`
}

type Predictions struct {
	db *bun.DB
}

func NewPredictions(db *bun.DB) *Predictions {
	return &Predictions{db: db}
}

// GetPredictions returns the latest model output for each of the given
// names. Names with no prediction contribute no rows.
func (p *Predictions) GetPredictions(ctx context.Context, names []string) ([]schemas.Prediction, error) {
	predictions := []schemas.Prediction{}
	err := p.db.NewSelect().
		Model(&predictions).
		Where("name IN (?)", bun.In(names)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// GetFeedbackResponses lists the votes cast by the given players, with the
// voter's canonical name attached.
func (p *Predictions) GetFeedbackResponses(ctx context.Context, names []string) ([]FeedbackResponse, error) {
	responses := []FeedbackResponse{}
	err := p.db.NewSelect().
		TableExpr("prediction_feedback AS f").
		ColumnExpr("voter.name AS player_name").
		ColumnExpr("f.vote AS vote").
		ColumnExpr("f.prediction AS prediction").
		ColumnExpr("f.confidence AS confidence").
		ColumnExpr("f.feedback_text AS feedback_text").
		ColumnExpr("f.proposed_label AS proposed_label").
		Join("JOIN players AS voter ON voter.id = f.voter_id").
		Where("voter.name IN (?)", bun.In(names)).
		Scan(ctx, &responses)
	if err != nil {
		return nil, err
	}
	return responses, nil
}
