//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
)

const skipIntegration = "Skipping integration test in short mode"

// TestDatabaseRepositoryIntegration exercises all repositories against a real
// PostgreSQL instance.
func TestDatabaseRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := repository.NewRepositories(db)
	require.NoError(t, err)

	t.Run("PlayerRepository", func(t *testing.T) {
		player, err := repos.Player.GetOrCreate(ctx, "Integration Test QB", "integration test qb", "QB")
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, player.ID)

		// Second call returns the same row
		again, err := repos.Player.GetOrCreate(ctx, "Integration Test QB", "integration test qb", "QB")
		require.NoError(t, err)
		assert.Equal(t, player.ID, again.ID)

		matches, err := repos.Player.FindByNameKeyAndPosition(ctx, "integration test qb", "QB")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, player.ID, matches[0].ID)
	})

	t.Run("InjuryRepository", func(t *testing.T) {
		player, err := repos.Player.GetOrCreate(ctx, "Integration Test WR", "integration test wr", "WR")
		require.NoError(t, err)

		record := &models.InjuryRecord{
			ID:           uuid.New(),
			PlayerID:     player.ID,
			Season:       2025,
			Week:         3,
			Team:         "DEN",
			Status:       models.StatusQuestionable,
			BodyPart:     "Hamstring",
			DateReported: time.Now().UTC(),
		}
		require.NoError(t, repos.Injury.Create(ctx, record))

		details, err := repos.Injury.ListByTeamWeek(ctx, "DEN", 2025, 3)
		require.NoError(t, err)
		require.NotEmpty(t, details)

		record.Status = models.StatusOut
		require.NoError(t, repos.Injury.Update(ctx, record))

		require.NoError(t, repos.Injury.Delete(ctx, record.ID))
	})

	t.Run("GameRepository", func(t *testing.T) {
		homeScore, awayScore := 27, 17
		game := &models.Game{
			ID:        uuid.New(),
			Season:    2025,
			Week:      2,
			HomeTeam:  "DEN",
			AwayTeam:  "CAR",
			HomeScore: &homeScore,
			AwayScore: &awayScore,
			Status:    models.GameFinal,
			KickoffAt: time.Now().UTC().Add(-7 * 24 * time.Hour),
		}
		require.NoError(t, repos.Game.Upsert(ctx, game))

		samples, err := repos.Game.RecentSamples(ctx, "DEN", 2025, 3, 5)
		require.NoError(t, err)
		require.NotEmpty(t, samples)
		assert.True(t, samples[0].Won)
		assert.Equal(t, 27, samples[0].PointsScored)
	})

	t.Run("MarketLineRepository", func(t *testing.T) {
		spread := decimal.NewFromFloat(-3.5)
		line := &models.MarketLine{
			ID:        uuid.New(),
			Season:    2025,
			Week:      2,
			HomeTeam:  "DEN",
			AwayTeam:  "CAR",
			Source:    "draftkings",
			Spread:    &spread,
			FetchedAt: time.Now().UTC(),
		}
		require.NoError(t, repos.MarketLine.Create(ctx, line))

		quotes, err := repos.MarketLine.ListForMatchup(ctx, 2025, 2, "DEN", "CAR")
		require.NoError(t, err)
		require.NotEmpty(t, quotes)
	})

	t.Run("RecommendationRepository", func(t *testing.T) {
		market, edgeVal := -3.5, -4.0
		rec := &models.Recommendation{
			ID:            uuid.New(),
			GameID:        uuid.New(),
			Season:        2025,
			Week:          2,
			HomeTeam:      "DEN",
			AwayTeam:      "CAR",
			PredictedLine: -7.5,
			MarketLine:    &market,
			Edge:          &edgeVal,
			Confidence:    models.ConfidenceHigh,
			Side:          "DEN -3.5",
			CreatedAt:     time.Now().UTC(),
		}
		require.NoError(t, repos.Recommendation.Upsert(ctx, rec))

		// Upsert with same game replaces the prediction fields
		rec.PredictedLine = -8.0
		require.NoError(t, repos.Recommendation.Upsert(ctx, rec))

		recs, err := repos.Recommendation.ListByWeek(ctx, 2025, 2)
		require.NoError(t, err)
		require.NotEmpty(t, recs)

		actual := 10.0
		won := true
		units := decimal.NewFromFloat(0.9091)
		now := time.Now().UTC()
		rec.ActualMargin = &actual
		rec.BetWon = &won
		rec.UnitsWon = &units
		rec.ScoredAt = &now
		require.NoError(t, repos.Recommendation.UpdateResult(ctx, rec))
	})
}
