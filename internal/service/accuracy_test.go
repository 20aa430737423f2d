package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/models"
)

func finalGame(home, away string, homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:        uuid.New(),
		Season:    2025,
		Week:      5,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		Status:    models.GameFinal,
	}
}

func betRecommendation(game *models.Game, marketLine, edge float64, side string) *models.Recommendation {
	return &models.Recommendation{
		ID:         uuid.New(),
		GameID:     game.ID,
		Season:     game.Season,
		Week:       game.Week,
		HomeTeam:   game.HomeTeam,
		AwayTeam:   game.AwayTeam,
		MarketLine: &marketLine,
		Edge:       &edge,
		Side:       side,
		Confidence: models.ConfidenceHigh,
	}
}

func TestScoreWeekSettlesHomeBetWin(t *testing.T) {
	games := new(MockGameRepository)
	recs := new(MockRecommendationRepository)

	// DEN -3.5 at home, bet on DEN (negative edge), wins 27-17
	game := finalGame("DEN", "CAR", 27, 17)
	rec := betRecommendation(game, -3.5, -6.5, "DEN -3.5")

	games.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Game{game}, nil)
	recs.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Recommendation{rec}, nil)
	recs.On("UpdateResult", mock.Anything, rec).Return(nil)

	svc := NewAccuracyService(games, recs, 2025, testLogger())

	stats, err := svc.ScoreWeek(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Scored)
	assert.Equal(t, 1, stats.Wins)
	require.NotNil(t, rec.BetWon)
	assert.True(t, *rec.BetWon)
	require.NotNil(t, rec.ActualMargin)
	assert.InDelta(t, 10.0, *rec.ActualMargin, 1e-9)
	require.NotNil(t, rec.UnitsWon)
	units, _ := rec.UnitsWon.Float64()
	assert.InDelta(t, 0.9091, units, 1e-4)
	assert.NotNil(t, rec.ScoredAt)
}

func TestScoreWeekSettlesHomeBetLoss(t *testing.T) {
	games := new(MockGameRepository)
	recs := new(MockRecommendationRepository)

	// DEN -3.5 bet, DEN wins by 3 but fails to cover
	game := finalGame("DEN", "CAR", 20, 17)
	rec := betRecommendation(game, -3.5, -6.5, "DEN -3.5")

	games.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Game{game}, nil)
	recs.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Recommendation{rec}, nil)
	recs.On("UpdateResult", mock.Anything, rec).Return(nil)

	svc := NewAccuracyService(games, recs, 2025, testLogger())

	stats, err := svc.ScoreWeek(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Losses)
	require.NotNil(t, rec.BetWon)
	assert.False(t, *rec.BetWon)
	units, _ := rec.UnitsWon.Float64()
	assert.InDelta(t, -1.0, units, 1e-9)
}

func TestScoreWeekSettlesAwayBetWin(t *testing.T) {
	games := new(MockGameRepository)
	recs := new(MockRecommendationRepository)

	// Positive edge means the away side held value. CAR +3.5 covers in a
	// 21-20 home win.
	game := finalGame("DEN", "CAR", 21, 20)
	rec := betRecommendation(game, -3.5, 4.0, "CAR +3.5")

	games.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Game{game}, nil)
	recs.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Recommendation{rec}, nil)
	recs.On("UpdateResult", mock.Anything, rec).Return(nil)

	svc := NewAccuracyService(games, recs, 2025, testLogger())

	stats, err := svc.ScoreWeek(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Wins)
	require.NotNil(t, rec.BetWon)
	assert.True(t, *rec.BetWon)
}

func TestScoreWeekPush(t *testing.T) {
	games := new(MockGameRepository)
	recs := new(MockRecommendationRepository)

	// DEN -3 bet, DEN wins by exactly 3
	game := finalGame("DEN", "CAR", 23, 20)
	rec := betRecommendation(game, -3.0, -4.0, "DEN -3.0")

	games.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Game{game}, nil)
	recs.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Recommendation{rec}, nil)
	recs.On("UpdateResult", mock.Anything, rec).Return(nil)

	svc := NewAccuracyService(games, recs, 2025, testLogger())

	stats, err := svc.ScoreWeek(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Pushes)
	assert.Nil(t, rec.BetWon)
	require.NotNil(t, rec.UnitsWon)
	assert.True(t, rec.UnitsWon.IsZero())
	assert.True(t, stats.Units.IsZero())
}

func TestScoreWeekPassGetsMarginOnly(t *testing.T) {
	games := new(MockGameRepository)
	recs := new(MockRecommendationRepository)

	game := finalGame("DEN", "CAR", 30, 10)
	rec := &models.Recommendation{
		ID:       uuid.New(),
		GameID:   game.ID,
		Season:   2025,
		Week:     5,
		HomeTeam: "DEN",
		AwayTeam: "CAR",
		Side:     models.RecommendationPass,
		Reason:   "edge below threshold",
	}

	games.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Game{game}, nil)
	recs.On("ListByWeek", mock.Anything, 2025, 5).Return([]*models.Recommendation{rec}, nil)
	recs.On("UpdateResult", mock.Anything, rec).Return(nil)

	svc := NewAccuracyService(games, recs, 2025, testLogger())

	stats, err := svc.ScoreWeek(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Passes)
	assert.Equal(t, 1, stats.Scored)
	require.NotNil(t, rec.ActualMargin)
	assert.InDelta(t, 20.0, *rec.ActualMargin, 1e-9)
	assert.Nil(t, rec.BetWon)
}

func TestScoreWeekSkipsPendingAndSettled(t *testing.T) {
	games := new(MockGameRepository)
	recs := new(MockRecommendationRepository)

	pending := scheduledGame("KC", "LV", 5)
	settled := finalGame("DEN", "CAR", 27, 17)

	pendingRec := betRecommendation(pending, -7.0, -4.0, "KC -7.0")
	settledAt := time.Now().UTC()
	settledRec := betRecommendation(settled, -3.5, -6.5, "DEN -3.5")
	settledRec.ScoredAt = &settledAt

	games.On("ListByWeek", mock.Anything, 2025, 5).
		Return([]*models.Game{pending, settled}, nil)
	recs.On("ListByWeek", mock.Anything, 2025, 5).
		Return([]*models.Recommendation{pendingRec, settledRec}, nil)

	svc := NewAccuracyService(games, recs, 2025, testLogger())

	stats, err := svc.ScoreWeek(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Scored)
	assert.Equal(t, 1, stats.Pending)
	recs.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything)
}
