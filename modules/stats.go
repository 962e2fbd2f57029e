package modules

import (
	"context"

	"detector-go/database/schemas"
)

func (d *PlayerDirectory) Count(ctx context.Context) (int, error) {
	return d.db.NewSelect().Model((*schemas.Player)(nil)).Count(ctx)
}

func (f *FeedbackModule) Count(ctx context.Context) (int, error) {
	return f.db.NewSelect().Model((*schemas.PredictionFeedback)(nil)).Count(ctx)
}
