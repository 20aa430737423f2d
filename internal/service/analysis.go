package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/datasource"
	"github.com/yourusername/gridiron-prophet/internal/edge"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
)

// MarginPredictor is the slice of the predictor the analysis service needs
type MarginPredictor interface {
	Predict(ctx context.Context, game *models.Game, staleInjuryData bool) (*models.Prediction, error)
}

// WeekAnalysis is the full output of one analysis run
type WeekAnalysis struct {
	Season          int
	Week            int
	GeneratedAt     time.Time
	StaleInjuryData bool
	Predictions     []*models.Prediction
	Recommendations []*models.Recommendation
	// Opportunities are the non-pass recommendations ranked by absolute
	// edge, largest first.
	Opportunities []*models.Recommendation
}

// AnalysisService drives the weekly prediction and edge pipeline
type AnalysisService struct {
	games     repository.GameRepository
	lines     repository.MarketLineRepository
	recs      repository.RecommendationRepository
	odds      datasource.OddsSource
	predictor MarginPredictor
	edges     *edge.Classifier
	season    int
	log       *logrus.Entry
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	games repository.GameRepository,
	lines repository.MarketLineRepository,
	recs repository.RecommendationRepository,
	odds datasource.OddsSource,
	marginPredictor MarginPredictor,
	edges *edge.Classifier,
	seasonYear int,
	baseLogger *logrus.Logger,
) *AnalysisService {
	return &AnalysisService{
		games:     games,
		lines:     lines,
		recs:      recs,
		odds:      odds,
		predictor: marginPredictor,
		edges:     edges,
		season:    seasonYear,
		log:       baseLogger.WithField("component", "analysis"),
	}
}

// RefreshLines fetches current bookmaker quotes and appends them to the
// market line history. Fetch failures leave prior quotes in place.
func (s *AnalysisService) RefreshLines(ctx context.Context, week int) (int, error) {
	quotes, err := s.odds.FetchLines(ctx, s.season, week)
	if err != nil {
		return 0, err
	}

	stored := 0
	for i := range quotes {
		if err := s.lines.Create(ctx, &quotes[i]); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"home_team": quotes[i].HomeTeam,
				"source":    quotes[i].Source,
			}).Warn("Failed to store market line")
			continue
		}
		stored++
	}

	return stored, nil
}

// AnalyzeWeek predicts every scheduled game of the week, compares each
// prediction against the market consensus and persists the resulting
// recommendations. Games already final are skipped.
func (s *AnalysisService) AnalyzeWeek(ctx context.Context, week int, staleInjuryData bool) (*WeekAnalysis, error) {
	start := time.Now()

	games, err := s.games.ListByWeek(ctx, s.season, week)
	if err != nil {
		return nil, fmt.Errorf("listing games for week %d: %w", week, err)
	}

	analysis := &WeekAnalysis{
		Season:          s.season,
		Week:            week,
		GeneratedAt:     start.UTC(),
		StaleInjuryData: staleInjuryData,
	}

	for _, game := range games {
		if game.Status != models.GameScheduled {
			continue
		}

		prediction, err := s.predictor.Predict(ctx, game, staleInjuryData)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"home_team": game.HomeTeam,
				"away_team": game.AwayTeam,
			}).Error("Prediction failed, skipping matchup")
			continue
		}

		quotes, err := s.lines.ListForMatchup(ctx, s.season, week, game.HomeTeam, game.AwayTeam)
		if err != nil {
			return nil, fmt.Errorf("loading market lines for %s vs %s: %w", game.AwayTeam, game.HomeTeam, err)
		}
		consensus := models.AggregateLines(quotes)

		rec := s.edges.Classify(prediction, consensus)
		if err := s.recs.Upsert(ctx, rec); err != nil {
			return nil, fmt.Errorf("storing recommendation for %s vs %s: %w", game.AwayTeam, game.HomeTeam, err)
		}

		analysis.Predictions = append(analysis.Predictions, prediction)
		analysis.Recommendations = append(analysis.Recommendations, rec)
		if !rec.IsPass() {
			analysis.Opportunities = append(analysis.Opportunities, rec)
		}
	}

	sort.SliceStable(analysis.Opportunities, func(i, j int) bool {
		return math.Abs(*analysis.Opportunities[i].Edge) > math.Abs(*analysis.Opportunities[j].Edge)
	})

	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	s.log.WithFields(logrus.Fields{
		"week":           week,
		"games":          len(analysis.Predictions),
		"opportunities":  len(analysis.Opportunities),
		"stale_injuries": staleInjuryData,
		"duration":       time.Since(start).String(),
	}).Info("Week analysis complete")

	return analysis, nil
}
