package models

import (
	"time"

	"github.com/google/uuid"
)

// ConfidenceTier classifies how strongly independent signals agree
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "HIGH"
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	ConfidenceLow    ConfidenceTier = "LOW"
)

// PredictionComponents holds every named contribution to the predicted
// margin. A typed struct rather than a map so a component cannot silently be
// omitted; the sum of the fields is the predicted margin.
type PredictionComponents struct {
	Classifier      float64 `db:"classifier" json:"classifier"`
	CurrentRecord   float64 `db:"current_record" json:"current_record"`
	HistoricalTrend float64 `db:"historical_trend" json:"historical_trend"`
	OffensivePower  float64 `db:"offensive_power" json:"offensive_power"`
	DefensivePower  float64 `db:"defensive_power" json:"defensive_power"`
	InjuryImpact    float64 `db:"injury_impact" json:"injury_impact"`
	HomeField       float64 `db:"home_field" json:"home_field"`
}

// Sum returns the predicted margin (home minus away)
func (c PredictionComponents) Sum() float64 {
	return c.Classifier +
		c.CurrentRecord +
		c.HistoricalTrend +
		c.OffensivePower +
		c.DefensivePower +
		c.InjuryImpact +
		c.HomeField
}

// Prediction is the composite margin estimate for one matchup and week.
// Immutable once computed for a given input snapshot; a refresh recomputes
// the whole record.
type Prediction struct {
	ID              uuid.UUID            `db:"id" json:"id" validate:"required,uuid4"`
	GameID          uuid.UUID            `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Season          int                  `db:"season" json:"season" validate:"required"`
	Week            int                  `db:"week" json:"week" validate:"required,gte=1,lte=18"`
	HomeTeam        string               `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam        string               `db:"away_team" json:"away_team" validate:"required"`
	Components      PredictionComponents `db:"components" json:"components"`
	PredictedMargin float64              `db:"predicted_margin" json:"predicted_margin"`
	PredictedLine   float64              `db:"predicted_line" json:"predicted_line"`
	WinProbability  float64              `db:"win_probability" json:"win_probability" validate:"gte=0,lte=1"`
	ConfidenceScore int                  `db:"confidence_score" json:"confidence_score"`
	Confidence      ConfidenceTier       `db:"confidence" json:"confidence"`
	HomeInjuryScore float64              `db:"home_injury_score" json:"home_injury_score"`
	AwayInjuryScore float64              `db:"away_injury_score" json:"away_injury_score"`
	StaleInjuryData bool                 `db:"stale_injury_data" json:"stale_injury_data"`
	FeatureVersion  string               `db:"feature_version" json:"feature_version"`
	PredictedAt     time.Time            `db:"predicted_at" json:"predicted_at"`
}

// PredictedScores splits the margin around a league-average base score for
// display and accuracy tracking.
func (p *Prediction) PredictedScores() (home, away float64) {
	const base = 24.0
	return base + p.PredictedMargin/2, base - p.PredictedMargin/2
}

// HomeFavored reports whether the model favors the home side
func (p *Prediction) HomeFavored() bool {
	return p.PredictedMargin > 0
}
