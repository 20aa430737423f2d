package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// InjuryStatus is the designation from the official injury report
type InjuryStatus string

const (
	StatusOut          InjuryStatus = "Out"
	StatusDoubtful     InjuryStatus = "Doubtful"
	StatusQuestionable InjuryStatus = "Questionable"
	StatusProbable     InjuryStatus = "Probable"
	StatusIR           InjuryStatus = "IR"
	StatusPUP          InjuryStatus = "PUP"
	StatusNFI          InjuryStatus = "NFI"
)

// NormalizeInjuryStatus maps provider status strings onto the internal enum.
// Unrecognized statuses are preserved as-is so the scorer can apply its
// conservative default multiplier.
func NormalizeInjuryStatus(raw string) InjuryStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "OUT", "O":
		return StatusOut
	case "DOUBTFUL", "D":
		return StatusDoubtful
	case "QUESTIONABLE", "Q":
		return StatusQuestionable
	case "PROBABLE", "P":
		return StatusProbable
	case "IR", "INJURED RESERVE":
		return StatusIR
	case "PUP":
		return StatusPUP
	case "NFI":
		return StatusNFI
	default:
		return InjuryStatus(strings.TrimSpace(raw))
	}
}

// InjuryRecord is the persisted current injury designation for a player.
// At most one current record exists per (player, season, week); newer reports
// within the same week supersede it in place.
type InjuryRecord struct {
	ID           uuid.UUID    `db:"id" json:"id" validate:"required,uuid4"`
	PlayerID     uuid.UUID    `db:"player_id" json:"player_id" validate:"required,uuid4"`
	Season       int          `db:"season" json:"season" validate:"required,gte=2000"`
	Week         int          `db:"week" json:"week" validate:"required,gte=1,lte=18"`
	Team         string       `db:"team" json:"team" validate:"required"`
	Status       InjuryStatus `db:"status" json:"status" validate:"required"`
	BodyPart     string       `db:"body_part" json:"body_part"`
	Notes        string       `db:"notes" json:"notes"`
	DateReported time.Time    `db:"date_reported" json:"date_reported"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// InjuryDetail is an injury record joined with its player's identity, the
// shape the severity scorer and reconciliation engine consume.
type InjuryDetail struct {
	InjuryRecord
	PlayerName string `db:"player_name" json:"player_name"`
	Position   string `db:"position" json:"position"`
}

// InjurySnapshotRow is one row of an external injury report snapshot before
// entity resolution has mapped it to a persisted player.
type InjurySnapshotRow struct {
	RawName      string
	Team         string
	Position     string
	Status       InjuryStatus
	BodyPart     string
	Notes        string
	DateReported time.Time
}

// IsAbsence reports whether the status implies the player misses the game
// entirely rather than being a game-time decision.
func (r *InjuryRecord) IsAbsence() bool {
	switch r.Status {
	case StatusOut, StatusIR, StatusPUP, StatusNFI:
		return true
	default:
		return false
	}
}
