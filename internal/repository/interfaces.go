package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

// PlayerRepository defines operations for player entities
type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	// GetOrCreate returns the existing player for the normalized name key or
	// inserts a new one. Players are never deleted.
	GetOrCreate(ctx context.Context, name, nameKey, position string) (*models.Player, error)
	// FindByNameKeyAndTeam resolves a player scoped to a team's current-season
	// roster.
	FindByNameKeyAndTeam(ctx context.Context, nameKey, team string, season int) (*models.Player, error)
	// FindByNameKeyAndPosition is the unscoped fallback lookup.
	FindByNameKeyAndPosition(ctx context.Context, nameKey, position string) ([]*models.Player, error)
}

// MembershipRepository defines operations for team-season memberships
type MembershipRepository interface {
	// GetCurrent returns the single membership row for (player, season).
	GetCurrent(ctx context.Context, playerID uuid.UUID, season int) (*models.TeamSeasonMembership, error)
	// Upsert inserts or overwrites the membership for (player, season).
	Upsert(ctx context.Context, membership *models.TeamSeasonMembership) error
	ListByTeam(ctx context.Context, team string, season int) ([]*models.TeamSeasonMembership, error)
}

// InjuryRepository defines operations for injury records
type InjuryRepository interface {
	Create(ctx context.Context, record *models.InjuryRecord) error
	Update(ctx context.Context, record *models.InjuryRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListBySeason returns every current injury record for a season joined
	// with player identity, the substrate for a reconciliation pass.
	ListBySeason(ctx context.Context, season int) ([]*models.InjuryDetail, error)
	// ListByTeamWeek returns the current injuries for one team and week.
	ListByTeamWeek(ctx context.Context, team string, season, week int) ([]*models.InjuryDetail, error)
}

// GameRepository defines operations for games and performance samples
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListByWeek(ctx context.Context, season, week int) ([]*models.Game, error)
	// RecentSamples returns a team's completed-game samples strictly before
	// the given week, most recent first, at most limit rows.
	RecentSamples(ctx context.Context, team string, season, beforeWeek, limit int) ([]models.TeamPerformanceSample, error)
	// SeasonSamples returns all of a team's completed-game samples for a season.
	SeasonSamples(ctx context.Context, team string, season int) ([]models.TeamPerformanceSample, error)
}

// UsageRepository defines operations for snap counts and depth charts
type UsageRepository interface {
	// GetUsageSummary aggregates snap-share history strictly before the given
	// week and the best depth-chart order for a player. Fields are nil when
	// no history exists.
	GetUsageSummary(ctx context.Context, playerID uuid.UUID, season, beforeWeek int) (*models.UsageSummary, error)
	UpsertSnapCount(ctx context.Context, snap *models.SnapCount) error
	UpsertDepthChartEntry(ctx context.Context, entry *models.DepthChartEntry) error
}

// MarketLineRepository defines operations for bookmaker quotes
type MarketLineRepository interface {
	Create(ctx context.Context, line *models.MarketLine) error
	ListForMatchup(ctx context.Context, season, week int, homeTeam, awayTeam string) ([]models.MarketLine, error)
}

// RecommendationRepository defines operations for persisted recommendations
type RecommendationRepository interface {
	// Upsert replaces the recommendation for (game, week); recommendations
	// are recomputed wholesale each refresh cycle.
	Upsert(ctx context.Context, rec *models.Recommendation) error
	ListByWeek(ctx context.Context, season, week int) ([]*models.Recommendation, error)
	// UpdateResult writes the accuracy fields after a game goes final.
	UpdateResult(ctx context.Context, rec *models.Recommendation) error
}
