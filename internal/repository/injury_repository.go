package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const errScanInjury = "failed to scan injury: %w"

// PostgresInjuryRepository implements InjuryRepository for PostgreSQL
type PostgresInjuryRepository struct {
	db *database.DB
}

// NewPostgresInjuryRepository creates a new injury repository
func NewPostgresInjuryRepository(db *database.DB) InjuryRepository {
	return &PostgresInjuryRepository{db: db}
}

// Create inserts a new injury record
func (r *PostgresInjuryRepository) Create(ctx context.Context, record *models.InjuryRecord) error {
	query := `
		INSERT INTO injuries
			(id, player_id, season, week, team, status, body_part, notes, date_reported, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.PlayerID, record.Season, record.Week, record.Team,
		record.Status, record.BodyPart, record.Notes, record.DateReported,
	)
	if err != nil {
		return fmt.Errorf("failed to create injury record: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing injury record. Newer
// reports within the same week supersede the persisted row in place.
func (r *PostgresInjuryRepository) Update(ctx context.Context, record *models.InjuryRecord) error {
	query := `
		UPDATE injuries SET
			week = $2, team = $3, status = $4, body_part = $5, notes = $6,
			date_reported = $7, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.Week, record.Team, record.Status,
		record.BodyPart, record.Notes, record.DateReported,
	)
	if err != nil {
		return fmt.Errorf("failed to update injury record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes a resolved injury record
func (r *PostgresInjuryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, "DELETE FROM injuries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete injury record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ListBySeason returns every current injury record for a season joined with
// player identity
func (r *PostgresInjuryRepository) ListBySeason(ctx context.Context, season int) ([]*models.InjuryDetail, error) {
	query := `
		SELECT i.id, i.player_id, i.season, i.week, i.team, i.status, i.body_part,
		       i.notes, i.date_reported, i.created_at, i.updated_at,
		       p.name, COALESCE(m.position, p.position)
		FROM injuries i
		JOIN players p ON p.id = i.player_id
		LEFT JOIN team_season_memberships m ON m.player_id = i.player_id AND m.season = i.season
		WHERE i.season = $1
	`

	return r.queryDetails(ctx, query, season)
}

// ListByTeamWeek returns the current injuries for one team and week
func (r *PostgresInjuryRepository) ListByTeamWeek(ctx context.Context, team string, season, week int) ([]*models.InjuryDetail, error) {
	query := `
		SELECT i.id, i.player_id, i.season, i.week, i.team, i.status, i.body_part,
		       i.notes, i.date_reported, i.created_at, i.updated_at,
		       p.name, COALESCE(m.position, p.position)
		FROM injuries i
		JOIN players p ON p.id = i.player_id
		LEFT JOIN team_season_memberships m ON m.player_id = i.player_id AND m.season = i.season
		WHERE i.team = $1 AND i.season = $2 AND i.week = $3
	`

	return r.queryDetails(ctx, query, team, season, week)
}

func (r *PostgresInjuryRepository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]*models.InjuryDetail, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query injuries: %w", err)
	}
	defer rows.Close()

	var details []*models.InjuryDetail
	for rows.Next() {
		d := &models.InjuryDetail{}
		err := rows.Scan(
			&d.ID, &d.PlayerID, &d.Season, &d.Week, &d.Team, &d.Status, &d.BodyPart,
			&d.Notes, &d.DateReported, &d.CreatedAt, &d.UpdatedAt,
			&d.PlayerName, &d.Position,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanInjury, err)
		}
		details = append(details, d)
	}

	return details, rows.Err()
}
