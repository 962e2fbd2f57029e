package schemas

import (
	"time"

	"github.com/uptrace/bun"
)

// Player is the canonical identity row. The ban flags are written by the
// moderation pipeline, never by this service.
type Player struct {
	bun.BaseModel `bun:"table:players"`

	ID              int64  `bun:"id,pk,autoincrement" json:"id"`
	Name            string `bun:"name,unique,notnull" json:"name"`
	PossibleBan     bool   `bun:"possible_ban" json:"possible_ban"`
	ConfirmedBan    bool   `bun:"confirmed_ban" json:"confirmed_ban"`
	ConfirmedPlayer bool   `bun:"confirmed_player" json:"confirmed_player"`
}

type Report struct {
	bun.BaseModel `bun:"table:reports"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	ReportingID int64     `bun:"reporting_id" json:"reportingID"`
	ReportedID  int64     `bun:"reported_id" json:"reportedID"`
	RegionID    int       `bun:"region_id" json:"region_id"`
	XCoord      int       `bun:"x_coord" json:"x_coord"`
	YCoord      int       `bun:"y_coord" json:"y_coord"`
	ZCoord      int       `bun:"z_coord" json:"z_coord"`
	Timestamp   time.Time `bun:"timestamp" json:"ts"`

	ManualDetect   bool `bun:"manual_detect" json:"manual_detect"`
	OnMembersWorld bool `bun:"on_members_world" json:"on_members_world"`
	OnPvPWorld     bool `bun:"on_pvp_world" json:"on_pvp_world"`
	WorldNumber    int  `bun:"world_number" json:"world_number"`

	EquipHeadID   int `bun:"equip_head_id" json:"equip_head_id"`
	EquipAmuletID int `bun:"equip_amulet_id" json:"equip_amulet_id"`
	EquipTorsoID  int `bun:"equip_torso_id" json:"equip_torso_id"`
	EquipLegsID   int `bun:"equip_legs_id" json:"equip_legs_id"`
	EquipBootsID  int `bun:"equip_boots_id" json:"equip_boots_id"`
	EquipCapeID   int `bun:"equip_cape_id" json:"equip_cape_id"`
	EquipHandsID  int `bun:"equip_hands_id" json:"equip_hands_id"`
	EquipWeaponID int `bun:"equip_weapon_id" json:"equip_weapon_id"`
	EquipShieldID int `bun:"equip_shield_id" json:"equip_shield_id"`
	EquipGeValue  int `bun:"equip_ge_value" json:"equip_ge_value"`

	Reporting *Player `bun:"rel:belongs-to,join:reporting_id=id" json:"-"`
	Reported  *Player `bun:"rel:belongs-to,join:reported_id=id" json:"-"`
}

// PredictionFeedback is one community vote about one subject player.
// Rows are append-only.
type PredictionFeedback struct {
	bun.BaseModel `bun:"table:prediction_feedback"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	VoterID       int64     `bun:"voter_id,notnull" json:"voter_id"`
	SubjectID     int64     `bun:"subject_id,notnull" json:"subject_id"`
	Vote          int       `bun:"vote" json:"vote"`
	Prediction    string    `bun:"prediction" json:"prediction"`
	Confidence    float64   `bun:"confidence" json:"confidence"`
	FeedbackText  *string   `bun:"feedback_text" json:"feedback_text"`
	ProposedLabel *string   `bun:"proposed_label" json:"proposed_label"`
	Timestamp     time.Time `bun:"timestamp,default:current_timestamp" json:"-"`

	Voter   *Player `bun:"rel:belongs-to,join:voter_id=id" json:"-"`
	Subject *Player `bun:"rel:belongs-to,join:subject_id=id" json:"-"`
}

// Prediction is the latest model output for a player name, written by the
// scoring pipeline outside this service.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions"`

	ID                  int64     `bun:"id,pk,autoincrement" json:"id"`
	Name                string    `bun:"name,unique" json:"name"`
	Prediction          string    `bun:"prediction" json:"prediction"`
	PredictedConfidence float64   `bun:"predicted_confidence" json:"predicted_confidence"`
	CreatedAt           time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
