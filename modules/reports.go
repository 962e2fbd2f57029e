package modules

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"detector-go/common"
	"detector-go/queue"
)

// Freshness window for inbound report timestamps. Anything older than a day
// is stale telemetry, anything more than an hour ahead is clock abuse.
const (
	MaxReportAge  = 24 * time.Hour
	MaxReportSkew = time.Hour
)

var ReportsPublished = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "reports_published_total",
	Help: "Count of detections forwarded to the queue",
})

type Equipment struct {
	EquipHeadID   int `json:"equip_head_id"`
	EquipAmuletID int `json:"equip_amulet_id"`
	EquipTorsoID  int `json:"equip_torso_id"`
	EquipLegsID   int `json:"equip_legs_id"`
	EquipBootsID  int `json:"equip_boots_id"`
	EquipCapeID   int `json:"equip_cape_id"`
	EquipHandsID  int `json:"equip_hands_id"`
	EquipWeaponID int `json:"equip_weapon_id"`
	EquipShieldID int `json:"equip_shield_id"`
}

// Detection is one inbound report in the plugin's wire shape. Boolean-ish
// fields arrive as 0/1 integers.
type Detection struct {
	Reporter       string    `json:"reporter"`
	Reported       string    `json:"reported"`
	RegionID       int       `json:"region_id"`
	XCoord         int       `json:"x_coord"`
	YCoord         int       `json:"y_coord"`
	ZCoord         int       `json:"z_coord"`
	TS             int64     `json:"ts"`
	ManualDetect   int       `json:"manual_detect"`
	OnMembersWorld int       `json:"on_members_world"`
	OnPvPWorld     int       `json:"on_pvp_world"`
	WorldNumber    int       `json:"world_number"`
	Equipment      Equipment `json:"equipment"`
	EquipGeValue   int       `json:"equip_ge_value"`
}

// ReportMessage is what gets forwarded to the queue once both names have
// been resolved to player ids.
type ReportMessage struct {
	ReportingID int64 `json:"reportingID"`
	ReportedID  int64 `json:"reportedID"`
	Detection
}

type playerResolver interface {
	ResolveOrCreate(ctx context.Context, name string) (int64, error)
}

type ReportIngest struct {
	players playerResolver
	queue   queue.Publisher
	now     func() time.Time
}

func NewReportIngest(players playerResolver, q queue.Publisher) *ReportIngest {
	return &ReportIngest{players: players, queue: q, now: time.Now}
}

// ValidateBatch checks every detection before anything is resolved or
// published. One bad record rejects the whole batch; the returned slice has
// reporter/reported rewritten to canonical form.
func ValidateBatch(now time.Time, detections []Detection) ([]Detection, error) {
	if len(detections) == 0 {
		return nil, common.ErrEmptyBatch
	}

	validated := make([]Detection, 0, len(detections))
	for _, d := range detections {
		ts := time.Unix(d.TS, 0)
		if ts.Before(now.Add(-MaxReportAge)) || ts.After(now.Add(MaxReportSkew)) {
			return nil, fmt.Errorf("ts %d: %w", d.TS, common.ErrInvalidTimestamp)
		}

		reporter, err := NormalizeName(d.Reporter)
		if err != nil {
			return nil, fmt.Errorf("reporter %q: %w", d.Reporter, err)
		}
		reported, err := NormalizeName(d.Reported)
		if err != nil {
			return nil, fmt.Errorf("reported %q: %w", d.Reported, err)
		}

		d.Reporter = reporter
		d.Reported = reported
		validated = append(validated, d)
	}
	return validated, nil
}

// Ingest validates a batch, resolves every name to a player id (creating
// players on first sight) and forwards one message per detection. Validation
// completes before the first publish; a publish failure surfaces to the
// caller, it is never dropped.
func (r *ReportIngest) Ingest(ctx context.Context, detections []Detection) (int, error) {
	validated, err := ValidateBatch(r.now(), detections)
	if err != nil {
		return 0, err
	}

	// resolve each distinct name once per batch
	ids := make(map[string]int64)
	for _, d := range validated {
		for _, name := range []string{d.Reporter, d.Reported} {
			if _, ok := ids[name]; ok {
				continue
			}
			id, err := r.players.ResolveOrCreate(ctx, name)
			if err != nil {
				return 0, fmt.Errorf("resolve %q: %w", name, err)
			}
			ids[name] = id
		}
	}

	published := 0
	for _, d := range validated {
		msg := ReportMessage{
			ReportingID: ids[d.Reporter],
			ReportedID:  ids[d.Reported],
			Detection:   d,
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			return published, err
		}
		if err := r.queue.Publish(ctx, payload); err != nil {
			zap.S().Errorw("queue publish failed", "reported", d.Reported, "error", err)
			return published, fmt.Errorf("publish report: %w", err)
		}
		published++
		ReportsPublished.Inc()
	}

	zap.S().Infow("report batch forwarded", "detections", published)
	return published, nil
}
