package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecommendationPass is the side value emitted when no bet is recommended
const RecommendationPass = "pass"

// Recommendation is the outcome of comparing a prediction to the market.
// Recomputed each refresh cycle and persisted for later accuracy scoring.
type Recommendation struct {
	ID            uuid.UUID      `db:"id" json:"id" validate:"required,uuid4"`
	GameID        uuid.UUID      `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Season        int            `db:"season" json:"season" validate:"required"`
	Week          int            `db:"week" json:"week" validate:"required,gte=1,lte=18"`
	HomeTeam      string         `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam      string         `db:"away_team" json:"away_team" validate:"required"`
	PredictedLine float64        `db:"predicted_line" json:"predicted_line"`
	MarketLine    *float64       `db:"market_line" json:"market_line"`
	Edge          *float64       `db:"edge" json:"edge"`
	Confidence    ConfidenceTier `db:"confidence" json:"confidence"`
	Side          string         `db:"side" json:"side" validate:"required"`
	Reason        string         `db:"reason" json:"reason"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`

	// Accuracy fields, populated after the game goes final
	ActualMargin *float64         `db:"actual_margin" json:"actual_margin"`
	BetWon       *bool            `db:"bet_won" json:"bet_won"`
	UnitsWon     *decimal.Decimal `db:"units_won" json:"units_won"`
	ScoredAt     *time.Time       `db:"scored_at" json:"scored_at"`
}

// IsPass reports whether this recommendation is a no-bet
func (r *Recommendation) IsPass() bool {
	return r.Side == RecommendationPass
}

// IsScored reports whether the recommendation has been settled against a
// final result.
func (r *Recommendation) IsScored() bool {
	return r.ScoredAt != nil
}
