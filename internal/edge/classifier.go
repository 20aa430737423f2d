// Package edge compares predicted lines to the market and emits
// recommendations.
package edge

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

// Pass reasons written onto no-bet recommendations.
const (
	ReasonNoSpread  = "no market spread available"
	ReasonSmallEdge = "edge below threshold"
)

// Classifier turns a prediction plus a market consensus into a recommendation.
type Classifier struct {
	minEdge float64
	log     *logger.PredictionLogger
}

// NewClassifier creates an edge classifier. minEdge is the minimum absolute
// difference between predicted and market line worth acting on.
func NewClassifier(minEdge float64, baseLogger *logrus.Logger) *Classifier {
	return &Classifier{
		minEdge: minEdge,
		log:     logger.NewPredictionLogger(baseLogger),
	}
}

// Classify produces the recommendation for one prediction. A matchup with no
// market spread still yields a persisted record, marked pass, so accuracy
// scoring covers every prediction.
func (c *Classifier) Classify(prediction *models.Prediction, market *models.ConsensusLine) *models.Recommendation {
	rec := &models.Recommendation{
		ID:            uuid.New(),
		GameID:        prediction.GameID,
		Season:        prediction.Season,
		Week:          prediction.Week,
		HomeTeam:      prediction.HomeTeam,
		AwayTeam:      prediction.AwayTeam,
		PredictedLine: prediction.PredictedLine,
		Confidence:    prediction.Confidence,
		Side:          models.RecommendationPass,
		CreatedAt:     time.Now().UTC(),
	}

	if !market.HasSpread() {
		rec.Reason = ReasonNoSpread
		metrics.RecordRecommendation(string(rec.Confidence), "pass")
		c.log.LogRecommendation(rec.HomeTeam, rec.AwayTeam, rec.Week,
			rec.PredictedLine, nil, nil, rec.Side, string(rec.Confidence))
		return rec
	}

	spread, _ := market.Spread.Float64()
	edge := prediction.PredictedLine - spread
	rec.MarketLine = &spread
	rec.Edge = &edge

	if math.Abs(edge) < c.minEdge {
		rec.Reason = ReasonSmallEdge
		metrics.RecordRecommendation(string(rec.Confidence), "pass")
		c.log.LogRecommendation(rec.HomeTeam, rec.AwayTeam, rec.Week,
			rec.PredictedLine, &spread, &edge, rec.Side, string(rec.Confidence))
		return rec
	}

	rec.Side = betSide(prediction.HomeTeam, prediction.AwayTeam, edge, spread)
	metrics.RecordRecommendation(string(rec.Confidence), "bet")
	c.log.LogRecommendation(rec.HomeTeam, rec.AwayTeam, rec.Week,
		rec.PredictedLine, &spread, &edge, rec.Side, string(rec.Confidence))

	return rec
}

// betSide renders the human-facing pick. A negative edge means the model line
// is lower than the market's, so the home side holds value at the quoted
// number; a positive edge favors the away side. All three spread sign cases
// produce an explicit string.
func betSide(home, away string, edge, spread float64) string {
	if edge < 0 {
		switch {
		case spread > 0:
			return fmt.Sprintf("%s +%.1f", home, spread)
		case spread < 0:
			return fmt.Sprintf("%s %.1f", home, spread)
		default:
			return fmt.Sprintf("%s PK", home)
		}
	}

	switch {
	case spread < 0:
		return fmt.Sprintf("%s +%.1f", away, math.Abs(spread))
	case spread > 0:
		return fmt.Sprintf("%s %.1f", away, -spread)
	default:
		return fmt.Sprintf("%s PK", away)
	}
}
