package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const errScanMembership = "failed to scan membership: %w"

// PostgresMembershipRepository implements MembershipRepository for PostgreSQL
type PostgresMembershipRepository struct {
	db *database.DB
}

// NewPostgresMembershipRepository creates a new membership repository
func NewPostgresMembershipRepository(db *database.DB) MembershipRepository {
	return &PostgresMembershipRepository{db: db}
}

// GetCurrent returns the single membership row for (player, season)
func (r *PostgresMembershipRepository) GetCurrent(ctx context.Context, playerID uuid.UUID, season int) (*models.TeamSeasonMembership, error) {
	query := `
		SELECT id, player_id, season, team, position, jersey_number, years_exp, roster_status, updated_at
		FROM team_season_memberships
		WHERE player_id = $1 AND season = $2
		LIMIT 1
	`

	m := &models.TeamSeasonMembership{}
	err := r.db.GetPool().QueryRow(ctx, query, playerID, season).Scan(
		&m.ID, &m.PlayerID, &m.Season, &m.Team, &m.Position,
		&m.JerseyNumber, &m.YearsExp, &m.RosterStatus, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

// Upsert inserts or overwrites the membership for (player, season). A trade
// overwrites the team in place so the current-membership lookup stays O(1).
func (r *PostgresMembershipRepository) Upsert(ctx context.Context, m *models.TeamSeasonMembership) error {
	query := `
		INSERT INTO team_season_memberships
			(id, player_id, season, team, position, jersey_number, years_exp, roster_status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (player_id, season) DO UPDATE SET
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			jersey_number = EXCLUDED.jersey_number,
			years_exp = EXCLUDED.years_exp,
			roster_status = EXCLUDED.roster_status,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		m.ID, m.PlayerID, m.Season, m.Team, m.Position,
		m.JerseyNumber, m.YearsExp, m.RosterStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}

	return nil
}

// ListByTeam returns all memberships for one team and season
func (r *PostgresMembershipRepository) ListByTeam(ctx context.Context, team string, season int) ([]*models.TeamSeasonMembership, error) {
	query := `
		SELECT id, player_id, season, team, position, jersey_number, years_exp, roster_status, updated_at
		FROM team_season_memberships
		WHERE team = $1 AND season = $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, team, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships by team: %w", err)
	}
	defer rows.Close()

	var memberships []*models.TeamSeasonMembership
	for rows.Next() {
		m := &models.TeamSeasonMembership{}
		err := rows.Scan(
			&m.ID, &m.PlayerID, &m.Season, &m.Team, &m.Position,
			&m.JerseyNumber, &m.YearsExp, &m.RosterStatus, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanMembership, err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}
