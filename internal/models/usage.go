package models

import (
	"github.com/google/uuid"
)

// SnapCount records the fraction of a team's plays a player participated in
// for one week. Percentages are stored 0-100 as reported by the provider.
type SnapCount struct {
	PlayerID uuid.UUID `db:"player_id" json:"player_id" validate:"required,uuid4"`
	Season   int       `db:"season" json:"season" validate:"required"`
	Week     int       `db:"week" json:"week" validate:"required,gte=1,lte=18"`
	Team     string    `db:"team" json:"team"`
	SnapPct  float64   `db:"snap_pct" json:"snap_pct" validate:"gte=0,lte=100"`
}

// DepthChartEntry records a player's depth-chart order at a position.
// Order 1 is the starter.
type DepthChartEntry struct {
	PlayerID   uuid.UUID `db:"player_id" json:"player_id" validate:"required,uuid4"`
	Team       string    `db:"team" json:"team"`
	Position   string    `db:"position" json:"position"`
	DepthOrder int       `db:"depth_order" json:"depth_order" validate:"gte=1"`
}

// UsageSummary aggregates a player's usage history for importance scoring.
// Either field may be absent for players with no recorded usage.
type UsageSummary struct {
	AvgSnapPct *float64 `json:"avg_snap_pct"`
	DepthOrder *int     `json:"depth_order"`
	Position   string   `json:"position"`
}
