package modules

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// ReportScore is one aggregate row: how many distinct accused players fall
// into a given (ban flags, detection method) bucket for the queried
// reporters.
type ReportScore struct {
	Count           int  `json:"count"`
	PossibleBan     bool `json:"possible_ban"`
	ConfirmedBan    bool `json:"confirmed_ban"`
	ConfirmedPlayer bool `json:"confirmed_player"`
	ManualDetect    bool `json:"manual_detect"`
}

// FeedbackScore is one aggregate row: how many distinct feedback subjects
// fall into a given (ban flags, vote) bucket for the queried voters.
type FeedbackScore struct {
	Count           int  `json:"count"`
	PossibleBan     bool `json:"possible_ban"`
	ConfirmedBan    bool `json:"confirmed_ban"`
	ConfirmedPlayer bool `json:"confirmed_player"`
	Vote            int  `json:"vote"`
}

// Scores runs the read-only aggregations. Unknown names simply contribute no
// rows; there is no domain error beyond the store itself.
type Scores struct {
	db *bun.DB
}

func NewScores(db *bun.DB) *Scores {
	return &Scores{db: db}
}

// ReportScore filters reports by the reporting player's name and groups the
// accused players by their ban flags and the detection method.
func (s *Scores) ReportScore(ctx context.Context, names []string) ([]ReportScore, error) {
	rows := []ReportScore{}
	err := s.db.RunInTx(ctx, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			TableExpr("reports AS r").
			ColumnExpr("count(DISTINCT reported.id) AS count").
			ColumnExpr("reported.possible_ban AS possible_ban").
			ColumnExpr("reported.confirmed_ban AS confirmed_ban").
			ColumnExpr("reported.confirmed_player AS confirmed_player").
			ColumnExpr("coalesce(r.manual_detect, false) AS manual_detect").
			Join("JOIN players AS reporting ON reporting.id = r.reporting_id").
			Join("JOIN players AS reported ON reported.id = r.reported_id").
			Where("reporting.name IN (?)", bun.In(names)).
			GroupExpr("reported.possible_ban, reported.confirmed_ban, reported.confirmed_player, coalesce(r.manual_detect, false)").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FeedbackScore filters feedback by the voting player's name and groups the
// subjects by their ban flags and the vote cast.
func (s *Scores) FeedbackScore(ctx context.Context, names []string) ([]FeedbackScore, error) {
	rows := []FeedbackScore{}
	err := s.db.RunInTx(ctx, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			TableExpr("prediction_feedback AS f").
			ColumnExpr("count(DISTINCT subject.id) AS count").
			ColumnExpr("subject.possible_ban AS possible_ban").
			ColumnExpr("subject.confirmed_ban AS confirmed_ban").
			ColumnExpr("subject.confirmed_player AS confirmed_player").
			ColumnExpr("f.vote AS vote").
			Join("JOIN players AS voter ON voter.id = f.voter_id").
			Join("JOIN players AS subject ON subject.id = f.subject_id").
			Where("voter.name IN (?)", bun.In(names)).
			GroupExpr("subject.possible_ban, subject.confirmed_ban, subject.confirmed_player, f.vote").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
