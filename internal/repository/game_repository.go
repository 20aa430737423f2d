package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const errScanGame = "failed to scan game: %w"

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Upsert inserts or updates a game keyed by (season, week, home, away)
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games
			(id, season, week, home_team, away_team, home_score, away_score, status, kickoff_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (season, week, home_team, away_team) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status = EXCLUDED.status,
			kickoff_at = EXCLUDED.kickoff_at,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.Season, game.Week, game.HomeTeam, game.AwayTeam,
		game.HomeScore, game.AwayScore, game.Status, game.KickoffAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `
		SELECT id, season, week, home_team, away_team, home_score, away_score, status, kickoff_at, created_at, updated_at
		FROM games WHERE id = $1
	`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.Season, &game.Week, &game.HomeTeam, &game.AwayTeam,
		&game.HomeScore, &game.AwayScore, &game.Status, &game.KickoffAt,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListByWeek returns the schedule for a season and week ordered by kickoff
func (r *PostgresGameRepository) ListByWeek(ctx context.Context, season, week int) ([]*models.Game, error) {
	query := `
		SELECT id, season, week, home_team, away_team, home_score, away_score, status, kickoff_at, created_at, updated_at
		FROM games
		WHERE season = $1 AND week = $2
		ORDER BY kickoff_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by week: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.Season, &game.Week, &game.HomeTeam, &game.AwayTeam,
			&game.HomeScore, &game.AwayScore, &game.Status, &game.KickoffAt,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// RecentSamples returns a team's completed-game samples strictly before the
// given week, most recent first. The week bound keeps the form aggregator
// free of lookahead.
func (r *PostgresGameRepository) RecentSamples(ctx context.Context, team string, season, beforeWeek, limit int) ([]models.TeamPerformanceSample, error) {
	query := `
		SELECT id, season, week, home_team, away_team, home_score, away_score, status, kickoff_at, created_at, updated_at
		FROM games
		WHERE season = $1 AND week < $2 AND status = 'final'
		  AND (home_team = $3 OR away_team = $3)
		ORDER BY week DESC
		LIMIT $4
	`

	return r.querySamples(ctx, team, query, season, beforeWeek, team, limit)
}

// SeasonSamples returns all of a team's completed-game samples for a season
func (r *PostgresGameRepository) SeasonSamples(ctx context.Context, team string, season int) ([]models.TeamPerformanceSample, error) {
	query := `
		SELECT id, season, week, home_team, away_team, home_score, away_score, status, kickoff_at, created_at, updated_at
		FROM games
		WHERE season = $1 AND status = 'final'
		  AND (home_team = $2 OR away_team = $2)
		ORDER BY week ASC
	`

	return r.querySamples(ctx, team, query, season, team)
}

func (r *PostgresGameRepository) querySamples(ctx context.Context, team, query string, args ...interface{}) ([]models.TeamPerformanceSample, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance samples: %w", err)
	}
	defer rows.Close()

	var samples []models.TeamPerformanceSample
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.Season, &game.Week, &game.HomeTeam, &game.AwayTeam,
			&game.HomeScore, &game.AwayScore, &game.Status, &game.KickoffAt,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		if sample, ok := game.SampleFor(team); ok {
			samples = append(samples, sample)
		}
	}

	return samples, rows.Err()
}
