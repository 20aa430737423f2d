package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const errScanRecommendation = "failed to scan recommendation: %w"

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// Upsert replaces the recommendation for a game. Accuracy fields are left
// untouched on conflict so a refresh cannot clobber a settled result.
func (r *PostgresRecommendationRepository) Upsert(ctx context.Context, rec *models.Recommendation) error {
	query := `
		INSERT INTO recommendations (
			id, game_id, season, week, home_team, away_team,
			predicted_line, market_line, edge, confidence, side, reason, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (game_id) DO UPDATE SET
			predicted_line = EXCLUDED.predicted_line,
			market_line = EXCLUDED.market_line,
			edge = EXCLUDED.edge,
			confidence = EXCLUDED.confidence,
			side = EXCLUDED.side,
			reason = EXCLUDED.reason,
			created_at = EXCLUDED.created_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		rec.ID, rec.GameID, rec.Season, rec.Week, rec.HomeTeam, rec.AwayTeam,
		rec.PredictedLine, rec.MarketLine, rec.Edge, rec.Confidence, rec.Side,
		rec.Reason, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}

	return nil
}

// ListByWeek returns all recommendations for a season and week
func (r *PostgresRecommendationRepository) ListByWeek(ctx context.Context, season, week int) ([]*models.Recommendation, error) {
	query := `
		SELECT id, game_id, season, week, home_team, away_team,
		       predicted_line, market_line, edge, confidence, side, reason, created_at,
		       actual_margin, bet_won, units_won, scored_at
		FROM recommendations
		WHERE season = $1 AND week = $2
		ORDER BY home_team
	`

	rows, err := r.db.GetPool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		err := rows.Scan(
			&rec.ID, &rec.GameID, &rec.Season, &rec.Week, &rec.HomeTeam, &rec.AwayTeam,
			&rec.PredictedLine, &rec.MarketLine, &rec.Edge, &rec.Confidence, &rec.Side,
			&rec.Reason, &rec.CreatedAt,
			&rec.ActualMargin, &rec.BetWon, &rec.UnitsWon, &rec.ScoredAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanRecommendation, err)
		}
		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// UpdateResult writes the accuracy fields for a settled recommendation
func (r *PostgresRecommendationRepository) UpdateResult(ctx context.Context, rec *models.Recommendation) error {
	query := `
		UPDATE recommendations
		SET actual_margin = $2, bet_won = $3, units_won = $4, scored_at = $5
		WHERE id = $1
	`

	result, err := r.db.GetPool().Exec(ctx, query,
		rec.ID, rec.ActualMargin, rec.BetWon, rec.UnitsWon, rec.ScoredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update recommendation result: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
