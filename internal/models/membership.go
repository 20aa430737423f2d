package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RosterStatus classifies a player's roster standing for a season
type RosterStatus string

const (
	RosterActive          RosterStatus = "Active"
	RosterPracticeSquad   RosterStatus = "PracticeSquad"
	RosterInjuredReserve  RosterStatus = "InjuredReserve"
	RosterPUP             RosterStatus = "PUP"
	RosterNFI             RosterStatus = "NFI"
	RosterSuspended       RosterStatus = "Suspended"
)

// TeamSeasonMembership binds a player to a team for one season. There is at
// most one row per (player, season); a trade overwrites the team in place so
// the current-membership lookup stays a single indexed read.
type TeamSeasonMembership struct {
	ID           uuid.UUID    `db:"id" json:"id" validate:"required,uuid4"`
	PlayerID     uuid.UUID    `db:"player_id" json:"player_id" validate:"required,uuid4"`
	Season       int          `db:"season" json:"season" validate:"required,gte=2000"`
	Team         string       `db:"team" json:"team" validate:"required"`
	Position     string       `db:"position" json:"position"`
	JerseyNumber *int         `db:"jersey_number" json:"jersey_number"`
	YearsExp     *int         `db:"years_exp" json:"years_exp"`
	RosterStatus RosterStatus `db:"roster_status" json:"roster_status"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// NormalizeRosterStatus maps provider status strings onto the internal enum.
// Unknown values default to Active rather than dropping the record.
func NormalizeRosterStatus(raw string) RosterStatus {
	status := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case status == "" || status == "ACT" || status == "ACTIVE":
		return RosterActive
	case strings.Contains(status, "PRACTICE") || status == "PRA" || status == "PS":
		return RosterPracticeSquad
	case strings.Contains(status, "INJURED") || status == "IR" || status == "RES" || status == "RESERVE":
		return RosterInjuredReserve
	case strings.Contains(status, "PUP"):
		return RosterPUP
	case strings.Contains(status, "NFI"):
		return RosterNFI
	case strings.Contains(status, "SUS"):
		return RosterSuspended
	default:
		return RosterActive
	}
}
