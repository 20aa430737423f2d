// Package predictor combines classifier output, team form, and injury impact
// into a point-margin estimate.
package predictor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/config"
	"github.com/yourusername/gridiron-prophet/internal/form"
	"github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/ml"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/severity"
)

// Component scaling factors. The model is a transparent linear sum; every
// contribution is inspectable per prediction.
const (
	classifierScale = 20.0
	recordScale     = 8.0
	trendScale      = 5.0
	offenseScale    = 0.3
	defenseScale    = 0.3
	injuryScale     = 0.3
)

// Confidence bonuses and the thresholds that award them.
const (
	classifierBonusThreshold = 5.0
	recordBonusThreshold     = 3.0
	injuryBonusThreshold     = 15.0
	offenseBonusThreshold    = 3.0
	defenseBonusThreshold    = 3.0

	highConfidenceCutoff   = 70
	mediumConfidenceCutoff = 45
)

// FormSource provides team performance aggregates.
type FormSource interface {
	Recent(ctx context.Context, team string, season, week int) (*form.RecentForm, error)
	SeasonToDate(ctx context.Context, team string, season, week int) (*form.SeasonForm, error)
	Historical(ctx context.Context, team string, season, priorSeasons int) (*form.HistoricalForm, error)
}

// InjurySource provides team injury aggregates.
type InjurySource interface {
	TeamImpact(ctx context.Context, team string, season, week int) (*severity.TeamImpact, error)
}

// WinProbabilitySource provides the classifier's home win probability.
type WinProbabilitySource interface {
	PredictWinProbability(ctx context.Context, gameID uuid.UUID, features ml.MatchupFeatures) (float64, error)
}

// Predictor produces margin predictions for scheduled games.
type Predictor struct {
	form       FormSource
	injuries   InjurySource
	classifier WinProbabilitySource
	cfg        *config.PredictionConfig
	log        *logger.PredictionLogger
}

// New creates a predictor.
func New(formSource FormSource, injuries InjurySource, classifier WinProbabilitySource, cfg *config.PredictionConfig, baseLogger *logrus.Logger) *Predictor {
	return &Predictor{
		form:       formSource,
		injuries:   injuries,
		classifier: classifier,
		cfg:        cfg,
		log:        logger.NewPredictionLogger(baseLogger),
	}
}

// Predict computes the margin estimate for one scheduled game. staleInjuryData
// marks predictions computed while the latest injury sync is known to have
// failed; the estimate still stands, flagged for the consumer.
func (p *Predictor) Predict(ctx context.Context, game *models.Game, staleInjuryData bool) (*models.Prediction, error) {
	season, week := game.Season, game.Week
	home, away := game.HomeTeam, game.AwayTeam

	homeSeason, err := p.form.SeasonToDate(ctx, home, season, week)
	if err != nil {
		return nil, fmt.Errorf("home season form: %w", err)
	}
	awaySeason, err := p.form.SeasonToDate(ctx, away, season, week)
	if err != nil {
		return nil, fmt.Errorf("away season form: %w", err)
	}

	homeRecent, err := p.form.Recent(ctx, home, season, week)
	if err != nil {
		return nil, fmt.Errorf("home recent form: %w", err)
	}
	awayRecent, err := p.form.Recent(ctx, away, season, week)
	if err != nil {
		return nil, fmt.Errorf("away recent form: %w", err)
	}

	homeHist, err := p.form.Historical(ctx, home, season, p.cfg.PriorSeasons)
	if err != nil {
		return nil, fmt.Errorf("home historical form: %w", err)
	}
	awayHist, err := p.form.Historical(ctx, away, season, p.cfg.PriorSeasons)
	if err != nil {
		return nil, fmt.Errorf("away historical form: %w", err)
	}

	homeInjury, err := p.injuries.TeamImpact(ctx, home, season, week)
	if err != nil {
		return nil, fmt.Errorf("home injury impact: %w", err)
	}
	awayInjury, err := p.injuries.TeamImpact(ctx, away, season, week)
	if err != nil {
		return nil, fmt.Errorf("away injury impact: %w", err)
	}

	features := ml.MatchupFeatures{
		HomeWins:          float64(homeSeason.Wins),
		HomeLosses:        float64(homeSeason.Losses),
		HomeWinPct:        homeSeason.WinRate,
		HomePointsScored:  homeSeason.AvgPointsScored,
		HomePointsAllowed: homeSeason.AvgPointsAllowed,
		AwayWins:          float64(awaySeason.Wins),
		AwayLosses:        float64(awaySeason.Losses),
		AwayWinPct:        awaySeason.WinRate,
		AwayPointsScored:  awaySeason.AvgPointsScored,
		AwayPointsAllowed: awaySeason.AvgPointsAllowed,
	}

	winProb, err := p.classifier.PredictWinProbability(ctx, game.ID, features)
	if err != nil {
		return nil, fmt.Errorf("classifier prediction: %w", err)
	}

	injuryDiff := awayInjury.TotalImpact - homeInjury.TotalImpact

	components := models.PredictionComponents{
		Classifier:      (winProb - 0.5) * classifierScale,
		CurrentRecord:   (homeSeason.WinRate - awaySeason.WinRate) * recordScale,
		HistoricalTrend: (homeHist.AvgWinRate - awayHist.AvgWinRate) * trendScale,
		OffensivePower:  (homeRecent.AvgPointsScored - awayRecent.AvgPointsScored) * offenseScale,
		DefensivePower:  (awayRecent.AvgPointsAllowed - homeRecent.AvgPointsAllowed) * defenseScale,
		InjuryImpact:    injuryDiff * injuryScale,
		HomeField:       p.cfg.HomeFieldAdvantage,
	}

	margin := components.Sum()
	score := confidenceScore(components, injuryDiff)

	prediction := &models.Prediction{
		ID:              uuid.New(),
		GameID:          game.ID,
		Season:          season,
		Week:            week,
		HomeTeam:        home,
		AwayTeam:        away,
		Components:      components,
		PredictedMargin: margin,
		PredictedLine:   -margin,
		WinProbability:  winProb,
		ConfidenceScore: score,
		Confidence:      confidenceTier(score),
		HomeInjuryScore: homeInjury.TotalImpact,
		AwayInjuryScore: awayInjury.TotalImpact,
		StaleInjuryData: staleInjuryData,
		FeatureVersion:  ml.FeatureVersion,
		PredictedAt:     time.Now().UTC(),
	}

	metrics.RecordPrediction()
	p.log.LogBreakdown(home, away, week,
		components.Classifier, components.CurrentRecord, components.HistoricalTrend,
		components.OffensivePower, components.DefensivePower, components.InjuryImpact,
		components.HomeField, margin)
	if staleInjuryData {
		p.log.LogStaleData(home, away, week)
	}

	return prediction, nil
}

// confidenceScore accumulates fixed bonuses when individual signals exceed
// their magnitude thresholds. The injury check runs on the raw score
// differential, before scaling.
func confidenceScore(c models.PredictionComponents, injuryDiff float64) int {
	score := 0
	if math.Abs(c.Classifier) > classifierBonusThreshold {
		score += 30
	}
	if math.Abs(c.CurrentRecord) > recordBonusThreshold {
		score += 25
	}
	if math.Abs(injuryDiff) > injuryBonusThreshold {
		score += 20
	}
	if math.Abs(c.OffensivePower) > offenseBonusThreshold {
		score += 15
	}
	if math.Abs(c.DefensivePower) > defenseBonusThreshold {
		score += 10
	}
	return score
}

func confidenceTier(score int) models.ConfidenceTier {
	switch {
	case score >= highConfidenceCutoff:
		return models.ConfidenceHigh
	case score >= mediumConfidenceCutoff:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
