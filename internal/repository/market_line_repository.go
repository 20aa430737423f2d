package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const errScanMarketLine = "failed to scan market line: %w"

// PostgresMarketLineRepository implements MarketLineRepository for PostgreSQL
type PostgresMarketLineRepository struct {
	db *database.DB
}

// NewPostgresMarketLineRepository creates a new market line repository
func NewPostgresMarketLineRepository(db *database.DB) MarketLineRepository {
	return &PostgresMarketLineRepository{db: db}
}

// Create inserts a bookmaker quote. Quotes are append-only; the latest fetch
// per source wins through ListForMatchup's ordering.
func (r *PostgresMarketLineRepository) Create(ctx context.Context, line *models.MarketLine) error {
	query := `
		INSERT INTO market_lines (id, season, week, home_team, away_team, source, spread, total, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		line.ID, line.Season, line.Week, line.HomeTeam, line.AwayTeam,
		line.Source, line.Spread, line.Total, line.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create market line: %w", err)
	}

	return nil
}

// ListForMatchup returns the most recent quote per source for a matchup
func (r *PostgresMarketLineRepository) ListForMatchup(ctx context.Context, season, week int, homeTeam, awayTeam string) ([]models.MarketLine, error) {
	query := `
		SELECT DISTINCT ON (source)
			id, season, week, home_team, away_team, source, spread, total, fetched_at
		FROM market_lines
		WHERE season = $1 AND week = $2 AND home_team = $3 AND away_team = $4
		ORDER BY source, fetched_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, season, week, homeTeam, awayTeam)
	if err != nil {
		return nil, fmt.Errorf("failed to query market lines: %w", err)
	}
	defer rows.Close()

	var lines []models.MarketLine
	for rows.Next() {
		var line models.MarketLine
		err := rows.Scan(
			&line.ID, &line.Season, &line.Week, &line.HomeTeam, &line.AwayTeam,
			&line.Source, &line.Spread, &line.Total, &line.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanMarketLine, err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
