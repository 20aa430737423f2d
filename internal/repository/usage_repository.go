package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

// PostgresUsageRepository implements UsageRepository for PostgreSQL
type PostgresUsageRepository struct {
	db *database.DB
}

// NewPostgresUsageRepository creates a new usage repository
func NewPostgresUsageRepository(db *database.DB) UsageRepository {
	return &PostgresUsageRepository{db: db}
}

// GetUsageSummary aggregates snap-share history strictly before the given
// week and the best depth-chart order for a player
func (r *PostgresUsageRepository) GetUsageSummary(ctx context.Context, playerID uuid.UUID, season, beforeWeek int) (*models.UsageSummary, error) {
	summary := &models.UsageSummary{}

	snapQuery := `
		SELECT AVG(snap_pct)
		FROM snap_counts
		WHERE player_id = $1 AND season = $2 AND week < $3 AND snap_pct > 0
	`
	var avg *float64
	if err := r.db.GetPool().QueryRow(ctx, snapQuery, playerID, season, beforeWeek).Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to query snap history: %w", err)
	}
	summary.AvgSnapPct = avg

	depthQuery := `
		SELECT depth_order, position
		FROM depth_charts
		WHERE player_id = $1
		ORDER BY depth_order ASC
		LIMIT 1
	`
	var depth int
	var position string
	err := r.db.GetPool().QueryRow(ctx, depthQuery, playerID).Scan(&depth, &position)
	if err == nil {
		summary.DepthOrder = &depth
		summary.Position = position
	}
	// No depth-chart row is not an error; the scorer falls back to its
	// documented default importance.

	return summary, nil
}

// UpsertSnapCount inserts or updates one week's snap share for a player
func (r *PostgresUsageRepository) UpsertSnapCount(ctx context.Context, snap *models.SnapCount) error {
	query := `
		INSERT INTO snap_counts (player_id, season, week, team, snap_pct)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, season, week) DO UPDATE SET
			team = EXCLUDED.team,
			snap_pct = EXCLUDED.snap_pct
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		snap.PlayerID, snap.Season, snap.Week, snap.Team, snap.SnapPct,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snap count: %w", err)
	}

	return nil
}

// UpsertDepthChartEntry inserts or updates a player's depth-chart order
func (r *PostgresUsageRepository) UpsertDepthChartEntry(ctx context.Context, entry *models.DepthChartEntry) error {
	query := `
		INSERT INTO depth_charts (player_id, team, position, depth_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id, team, position) DO UPDATE SET
			depth_order = EXCLUDED.depth_order
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		entry.PlayerID, entry.Team, entry.Position, entry.DepthOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert depth chart entry: %w", err)
	}

	return nil
}
