package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const errScanPlayer = "failed to scan player: %w"

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// Create inserts a new player
func (r *PostgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, name_key, position, college, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		player.ID, player.Name, player.NameKey, player.Position, player.College,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	return nil
}

// GetByID retrieves a player by ID
func (r *PostgresPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	query := `
		SELECT id, name, name_key, position, college, created_at, updated_at
		FROM players WHERE id = $1
	`

	player := &models.Player{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&player.ID, &player.Name, &player.NameKey, &player.Position, &player.College,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// GetOrCreate returns the existing player for a name key or inserts a new one
func (r *PostgresPlayerRepository) GetOrCreate(ctx context.Context, name, nameKey, position string) (*models.Player, error) {
	query := `
		SELECT id, name, name_key, position, college, created_at, updated_at
		FROM players WHERE name_key = $1
		LIMIT 1
	`

	player := &models.Player{}
	err := r.db.GetPool().QueryRow(ctx, query, nameKey).Scan(
		&player.ID, &player.Name, &player.NameKey, &player.Position, &player.College,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err == nil {
		return player, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}

	player = &models.Player{
		ID:        uuid.New(),
		Name:      name,
		NameKey:   nameKey,
		Position:  position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.Create(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// FindByNameKeyAndTeam resolves a player scoped to a team roster for a season
func (r *PostgresPlayerRepository) FindByNameKeyAndTeam(ctx context.Context, nameKey, team string, season int) (*models.Player, error) {
	query := `
		SELECT p.id, p.name, p.name_key, p.position, p.college, p.created_at, p.updated_at
		FROM players p
		JOIN team_season_memberships m ON m.player_id = p.id
		WHERE p.name_key = $1 AND m.team = $2 AND m.season = $3
		LIMIT 1
	`

	player := &models.Player{}
	err := r.db.GetPool().QueryRow(ctx, query, nameKey, team, season).Scan(
		&player.ID, &player.Name, &player.NameKey, &player.Position, &player.College,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find player by team: %w", err)
	}

	return player, nil
}

// FindByNameKeyAndPosition is the unscoped fallback lookup
func (r *PostgresPlayerRepository) FindByNameKeyAndPosition(ctx context.Context, nameKey, position string) ([]*models.Player, error) {
	query := `
		SELECT id, name, name_key, position, college, created_at, updated_at
		FROM players
		WHERE name_key = $1 AND position = $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, nameKey, position)
	if err != nil {
		return nil, fmt.Errorf("failed to query players by name and position: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player := &models.Player{}
		err := rows.Scan(
			&player.ID, &player.Name, &player.NameKey, &player.Position, &player.College,
			&player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanPlayer, err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
