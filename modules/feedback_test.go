package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"detector-go/common"
	"detector-go/database/schemas"
)

func feedbackInput() FeedbackInput {
	return FeedbackInput{
		PlayerName: "Player1",
		Vote:       -1,
		Prediction: "real_player",
		Confidence: 0.5,
		SubjectID:  1,
	}
}

func TestFeedbackInputValidate(t *testing.T) {
	in := feedbackInput()
	assert.NoError(t, in.Validate())

	for _, vote := range []int{-1, 0, 1} {
		in := feedbackInput()
		in.Vote = vote
		assert.NoError(t, in.Validate(), "vote=%d", vote)
	}
}

func TestFeedbackInputVoteOutOfRange(t *testing.T) {
	for _, vote := range []int{-2, 2, 10} {
		in := feedbackInput()
		in.Vote = vote
		assert.ErrorIs(t, in.Validate(), common.ErrValidation, "vote=%d", vote)
	}
}

func TestFeedbackInputConfidenceBounds(t *testing.T) {
	for _, conf := range []float64{0, 0.5, 1} {
		in := feedbackInput()
		in.Confidence = conf
		assert.NoError(t, in.Validate(), "confidence=%v", conf)
	}

	for _, conf := range []float64{-0.1, 1.1} {
		in := feedbackInput()
		in.Confidence = conf
		assert.ErrorIs(t, in.Validate(), common.ErrValidation, "confidence=%v", conf)
	}
}

func TestFeedbackInputBadVoterName(t *testing.T) {
	in := feedbackInput()
	in.PlayerName = ""
	assert.ErrorIs(t, in.Validate(), common.ErrInvalidName)
}

func TestFeedbackInputAnonymousVoter(t *testing.T) {
	// the reserved anonymous identity is an ordinary name here
	in := feedbackInput()
	in.PlayerName = "anonymoususer"
	assert.NoError(t, in.Validate())
}

func feedbackCount(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*schemas.PredictionFeedback)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestSubmitUnknownSubject(t *testing.T) {
	db := testDB(t)
	module := NewFeedbackModule(db, NewPlayerDirectory(db, nil))
	ctx := context.Background()

	in := feedbackInput()
	in.SubjectID = 99999

	err := module.Submit(ctx, in)
	assert.ErrorIs(t, err, common.ErrUnknownSubject)

	// nothing from the unit of work survives, voter creation included
	assert.Zero(t, feedbackCount(t, db))
	assert.Zero(t, playerCount(t, db))
}

func TestSubmitRecordsVote(t *testing.T) {
	db := testDB(t)
	dir := NewPlayerDirectory(db, nil)
	module := NewFeedbackModule(db, dir)
	ctx := context.Background()

	subjectID, err := dir.ResolveOrCreate(ctx, "player2")
	require.NoError(t, err)

	in := feedbackInput()
	in.SubjectID = subjectID

	require.NoError(t, module.Submit(ctx, in))

	var rows []schemas.PredictionFeedback
	require.NoError(t, db.NewSelect().Model(&rows).Scan(ctx))
	require.Len(t, rows, 1)
	assert.Equal(t, subjectID, rows[0].SubjectID)
	assert.Equal(t, -1, rows[0].Vote)

	voterID, found, err := dir.Lookup(ctx, "player1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, voterID, rows[0].VoterID)

	// votes are append-only, a repeat submission is a new row
	require.NoError(t, module.Submit(ctx, in))
	assert.Equal(t, 2, feedbackCount(t, db))
}
