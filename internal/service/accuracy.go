package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
)

// Standard -110 pricing: a winning unit returns 100/110
var winPayout = decimal.New(100, 0).Div(decimal.New(110, 0)).Round(4)

var lossPayout = decimal.New(-1, 0)

// AccuracyStats summarizes one scoring run
type AccuracyStats struct {
	Scored  int
	Wins    int
	Losses  int
	Pushes  int
	Passes  int
	Pending int
	Units   decimal.Decimal
}

// AccuracyService settles recommendations against final scores. Settled
// records are never rescored; a re-run after new finals only touches the
// games that went final since.
type AccuracyService struct {
	games  repository.GameRepository
	recs   repository.RecommendationRepository
	season int
	log    *logrus.Entry
}

// NewAccuracyService creates a new accuracy service
func NewAccuracyService(games repository.GameRepository, recs repository.RecommendationRepository, seasonYear int, baseLogger *logrus.Logger) *AccuracyService {
	return &AccuracyService{
		games:  games,
		recs:   recs,
		season: seasonYear,
		log:    baseLogger.WithField("component", "accuracy"),
	}
}

// ScoreWeek settles every unsettled recommendation of the week whose game
// has gone final.
func (s *AccuracyService) ScoreWeek(ctx context.Context, week int) (AccuracyStats, error) {
	stats := AccuracyStats{Units: decimal.Zero}

	games, err := s.games.ListByWeek(ctx, s.season, week)
	if err != nil {
		return stats, fmt.Errorf("listing games for week %d: %w", week, err)
	}

	gamesByID := make(map[string]*models.Game, len(games))
	for _, game := range games {
		gamesByID[game.ID.String()] = game
	}

	recs, err := s.recs.ListByWeek(ctx, s.season, week)
	if err != nil {
		return stats, fmt.Errorf("listing recommendations for week %d: %w", week, err)
	}

	now := time.Now().UTC()
	for _, rec := range recs {
		if rec.IsScored() {
			continue
		}

		game, ok := gamesByID[rec.GameID.String()]
		if !ok || !game.IsFinal() {
			stats.Pending++
			continue
		}

		margin, _ := game.Margin()
		s.settle(rec, margin, now, &stats)

		if err := s.recs.UpdateResult(ctx, rec); err != nil {
			return stats, fmt.Errorf("settling recommendation for %s vs %s: %w", rec.AwayTeam, rec.HomeTeam, err)
		}
		stats.Scored++
	}

	s.log.WithFields(logrus.Fields{
		"week":    week,
		"scored":  stats.Scored,
		"wins":    stats.Wins,
		"losses":  stats.Losses,
		"pushes":  stats.Pushes,
		"passes":  stats.Passes,
		"pending": stats.Pending,
		"units":   stats.Units.String(),
	}).Info("Week scored")

	return stats, nil
}

// settle fills the accuracy fields on one recommendation. A bet on the home
// side wins when the final margin beats the spread; a push settles flat with
// BetWon left nil.
func (s *AccuracyService) settle(rec *models.Recommendation, margin int, now time.Time, stats *AccuracyStats) {
	actual := float64(margin)
	rec.ActualMargin = &actual
	rec.ScoredAt = &now

	if rec.IsPass() || rec.MarketLine == nil || rec.Edge == nil {
		zero := decimal.Zero
		rec.UnitsWon = &zero
		stats.Passes++
		return
	}

	// Spread is quoted from the home perspective; the home side covers
	// when margin + spread > 0. A negative edge means the bet was on the
	// home side.
	cover := actual + *rec.MarketLine
	homeBet := *rec.Edge < 0

	switch {
	case cover == 0:
		zero := decimal.Zero
		rec.UnitsWon = &zero
		stats.Pushes++
	case (cover > 0) == homeBet:
		won := true
		rec.BetWon = &won
		payout := winPayout
		rec.UnitsWon = &payout
		stats.Wins++
		stats.Units = stats.Units.Add(winPayout)
	default:
		won := false
		rec.BetWon = &won
		payout := lossPayout
		rec.UnitsWon = &payout
		stats.Losses++
		stats.Units = stats.Units.Add(lossPayout)
	}
}
