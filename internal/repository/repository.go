package repository

import (
	"fmt"

	"github.com/yourusername/gridiron-prophet/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Player         PlayerRepository
	Membership     MembershipRepository
	Injury         InjuryRepository
	Game           GameRepository
	Usage          UsageRepository
	MarketLine     MarketLineRepository
	Recommendation RecommendationRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Player:         NewPostgresPlayerRepository(db),
		Membership:     NewPostgresMembershipRepository(db),
		Injury:         NewPostgresInjuryRepository(db),
		Game:           NewPostgresGameRepository(db),
		Usage:          NewPostgresUsageRepository(db),
		MarketLine:     NewPostgresMarketLineRepository(db),
		Recommendation: NewPostgresRecommendationRepository(db),
	}, nil
}
