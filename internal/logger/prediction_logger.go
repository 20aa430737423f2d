// Package logger provides structured logging for prediction output.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides structured logging for the prediction pipeline.
// The component breakdown is logged per prediction so every contribution to a
// recommendation stays inspectable.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "predictor"),
	}
}

// LogBreakdown logs the per-component contributions of a prediction.
func (pl *PredictionLogger) LogBreakdown(homeTeam, awayTeam string, week int, classifier, record, trend, offense, defense, injury, homeField, margin float64) {
	pl.WithFields(logrus.Fields{
		"home_team":        homeTeam,
		"away_team":        awayTeam,
		"week":             week,
		"classifier":       classifier,
		"current_record":   record,
		"historical_trend": trend,
		"offensive_power":  offense,
		"defensive_power":  defense,
		"injury_impact":    injury,
		"home_field":       homeField,
		"predicted_margin": margin,
	}).Debug("Prediction component breakdown")
}

// LogRecommendation logs the outcome of edge classification for a matchup.
func (pl *PredictionLogger) LogRecommendation(homeTeam, awayTeam string, week int, predictedLine float64, marketLine *float64, edge *float64, side, confidence string) {
	fields := logrus.Fields{
		"home_team":      homeTeam,
		"away_team":      awayTeam,
		"week":           week,
		"predicted_line": predictedLine,
		"side":           side,
		"confidence":     confidence,
	}
	if marketLine != nil {
		fields["market_line"] = *marketLine
	}
	if edge != nil {
		fields["edge"] = *edge
	}
	pl.WithFields(fields).Info("Recommendation produced")
}

// LogStaleData logs that a prediction was computed from stale persisted state
// because the latest snapshot fetch failed.
func (pl *PredictionLogger) LogStaleData(homeTeam, awayTeam string, week int) {
	pl.WithFields(logrus.Fields{
		"home_team": homeTeam,
		"away_team": awayTeam,
		"week":      week,
	}).Warn("Prediction uses stale injury data")
}
