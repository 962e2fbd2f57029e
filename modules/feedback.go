package modules

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"detector-go/common"
	"detector-go/database/schemas"
)

var allowedVotes = []int{-1, 0, 1}

// FeedbackInput is the wire shape of one community vote submission.
type FeedbackInput struct {
	PlayerName    string  `json:"player_name"`
	Vote          int     `json:"vote"`
	Prediction    string  `json:"prediction"`
	Confidence    float64 `json:"confidence"`
	SubjectID     int64   `json:"subject_id"`
	FeedbackText  *string `json:"feedback_text"`
	ProposedLabel *string `json:"proposed_label"`
}

// Validate enforces field ranges once, before anything touches the store.
func (in *FeedbackInput) Validate() error {
	if !slices.Contains(allowedVotes, in.Vote) {
		return fmt.Errorf("vote %d: %w", in.Vote, common.ErrValidation)
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return fmt.Errorf("confidence %v: %w", in.Confidence, common.ErrValidation)
	}
	if _, err := NormalizeName(in.PlayerName); err != nil {
		return err
	}
	return nil
}

// FeedbackModule records community votes. The voter is created on first
// sight, the subject must already exist.
type FeedbackModule struct {
	db      bun.IDB
	players *PlayerDirectory
}

func NewFeedbackModule(db bun.IDB, players *PlayerDirectory) *FeedbackModule {
	return &FeedbackModule{db: db, players: players}
}

// Submit validates the input, resolves the voter, checks the subject and
// inserts the vote row, all in one transaction so a failure at any step
// leaves nothing behind. The reserved anonymoususer identity takes the same
// get-or-create path as everyone else.
func (f *FeedbackModule) Submit(ctx context.Context, in FeedbackInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	voterName, err := NormalizeName(in.PlayerName)
	if err != nil {
		return err
	}

	err = f.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dir := f.players.WithDB(tx)

		voterID, err := dir.ResolveOrCreate(ctx, voterName)
		if err != nil {
			return fmt.Errorf("resolve voter: %w", err)
		}

		exists, err := dir.Exists(ctx, in.SubjectID)
		if err != nil {
			return fmt.Errorf("check subject: %w", err)
		}
		if !exists {
			return fmt.Errorf("subject %d: %w", in.SubjectID, common.ErrUnknownSubject)
		}

		feedback := &schemas.PredictionFeedback{
			VoterID:       voterID,
			SubjectID:     in.SubjectID,
			Vote:          in.Vote,
			Prediction:    in.Prediction,
			Confidence:    in.Confidence,
			FeedbackText:  in.FeedbackText,
			ProposedLabel: in.ProposedLabel,
		}

		if _, err := tx.NewInsert().Model(feedback).Exec(ctx); err != nil {
			return fmt.Errorf("insert feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.S().Infow("feedback recorded", "voter", voterName, "subject", in.SubjectID, "vote", in.Vote)
	return nil
}
