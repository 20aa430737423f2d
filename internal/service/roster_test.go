package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/datasource"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

// MockPlayerRepository mocks repository.PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	return m.Called(ctx, player).Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetOrCreate(ctx context.Context, name, nameKey, position string) (*models.Player, error) {
	args := m.Called(ctx, name, nameKey, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) FindByNameKeyAndTeam(ctx context.Context, nameKey, team string, season int) (*models.Player, error) {
	args := m.Called(ctx, nameKey, team, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) FindByNameKeyAndPosition(ctx context.Context, nameKey, position string) ([]*models.Player, error) {
	args := m.Called(ctx, nameKey, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

// MockMembershipRepository mocks repository.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) GetCurrent(ctx context.Context, playerID uuid.UUID, season int) (*models.TeamSeasonMembership, error) {
	args := m.Called(ctx, playerID, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamSeasonMembership), args.Error(1)
}

func (m *MockMembershipRepository) Upsert(ctx context.Context, membership *models.TeamSeasonMembership) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockMembershipRepository) ListByTeam(ctx context.Context, team string, season int) ([]*models.TeamSeasonMembership, error) {
	args := m.Called(ctx, team, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TeamSeasonMembership), args.Error(1)
}

func rosterPlayer(name string) *models.Player {
	return &models.Player{ID: uuid.New(), Name: name}
}

func TestSyncTeamNewPlayer(t *testing.T) {
	source := new(MockRosterSource)
	players := new(MockPlayerRepository)
	memberships := new(MockMembershipRepository)

	player := rosterPlayer("Jayden Daniels")
	source.On("FetchRoster", mock.Anything, "WAS").Return([]datasource.RosterRow{
		{RawName: "Jayden Daniels", Team: "WAS", Position: "QB", Status: "Active", Jersey: "5"},
	}, nil)
	players.On("GetOrCreate", mock.Anything, "Jayden Daniels", "jayden daniels", "QB").
		Return(player, nil)
	memberships.On("GetCurrent", mock.Anything, player.ID, 2025).
		Return(nil, models.ErrNotFound)
	memberships.On("Upsert", mock.Anything, mock.MatchedBy(func(m *models.TeamSeasonMembership) bool {
		return m.PlayerID == player.ID && m.Team == "WAS" &&
			m.RosterStatus == models.RosterActive &&
			m.JerseyNumber != nil && *m.JerseyNumber == 5
	})).Return(nil)

	svc := NewRosterSyncService(source, players, memberships, 2025, testLogger())

	stats, err := svc.SyncTeam(context.Background(), "WAS")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NewPlayers)
	memberships.AssertExpectations(t)
}

func TestSyncTeamTradeOverwritesMembership(t *testing.T) {
	source := new(MockRosterSource)
	players := new(MockPlayerRepository)
	memberships := new(MockMembershipRepository)

	player := rosterPlayer("Davante Adams")
	existing := &models.TeamSeasonMembership{
		ID:           uuid.New(),
		PlayerID:     player.ID,
		Season:       2025,
		Team:         "LV",
		Position:     "WR",
		RosterStatus: models.RosterActive,
	}

	source.On("FetchRoster", mock.Anything, "NYJ").Return([]datasource.RosterRow{
		{RawName: "Davante Adams", Team: "NYJ", Position: "WR", Status: "Active"},
	}, nil)
	players.On("GetOrCreate", mock.Anything, "Davante Adams", "davante adams", "WR").
		Return(player, nil)
	memberships.On("GetCurrent", mock.Anything, player.ID, 2025).Return(existing, nil)
	memberships.On("Upsert", mock.Anything, mock.MatchedBy(func(m *models.TeamSeasonMembership) bool {
		// Same row moves team in place
		return m.ID == existing.ID && m.Team == "NYJ"
	})).Return(nil)

	svc := NewRosterSyncService(source, players, memberships, 2025, testLogger())

	stats, err := svc.SyncTeam(context.Background(), "NYJ")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Trades)
	assert.Equal(t, 0, stats.NewPlayers)
}

func TestSyncTeamStatusChange(t *testing.T) {
	source := new(MockRosterSource)
	players := new(MockPlayerRepository)
	memberships := new(MockMembershipRepository)

	player := rosterPlayer("Nick Chubb")
	existing := &models.TeamSeasonMembership{
		ID:           uuid.New(),
		PlayerID:     player.ID,
		Season:       2025,
		Team:         "HOU",
		RosterStatus: models.RosterActive,
	}

	source.On("FetchRoster", mock.Anything, "HOU").Return([]datasource.RosterRow{
		{RawName: "Nick Chubb", Team: "HOU", Position: "RB", Status: "Injured Reserve"},
	}, nil)
	players.On("GetOrCreate", mock.Anything, "Nick Chubb", "nick chubb", "RB").
		Return(player, nil)
	memberships.On("GetCurrent", mock.Anything, player.ID, 2025).Return(existing, nil)
	memberships.On("Upsert", mock.Anything, mock.MatchedBy(func(m *models.TeamSeasonMembership) bool {
		return m.RosterStatus == models.RosterInjuredReserve
	})).Return(nil)

	svc := NewRosterSyncService(source, players, memberships, 2025, testLogger())

	stats, err := svc.SyncTeam(context.Background(), "HOU")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StatusChanges)
}

func TestSyncTeamUnchangedWritesNothing(t *testing.T) {
	source := new(MockRosterSource)
	players := new(MockPlayerRepository)
	memberships := new(MockMembershipRepository)

	player := rosterPlayer("Patrick Mahomes")
	existing := &models.TeamSeasonMembership{
		ID:           uuid.New(),
		PlayerID:     player.ID,
		Season:       2025,
		Team:         "KC",
		RosterStatus: models.RosterActive,
	}

	source.On("FetchRoster", mock.Anything, "KC").Return([]datasource.RosterRow{
		{RawName: "Patrick Mahomes", Team: "KC", Position: "QB", Status: "Active"},
	}, nil)
	players.On("GetOrCreate", mock.Anything, "Patrick Mahomes", "patrick mahomes", "QB").
		Return(player, nil)
	memberships.On("GetCurrent", mock.Anything, player.ID, 2025).Return(existing, nil)

	svc := NewRosterSyncService(source, players, memberships, 2025, testLogger())

	stats, err := svc.SyncTeam(context.Background(), "KC")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Unchanged)
	memberships.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSyncTeamFetchFailure(t *testing.T) {
	source := new(MockRosterSource)

	source.On("FetchRoster", mock.Anything, "KC").
		Return(nil, datasource.ErrSourceDisabled)

	svc := NewRosterSyncService(source, new(MockPlayerRepository), new(MockMembershipRepository), 2025, testLogger())

	_, err := svc.SyncTeam(context.Background(), "KC")
	require.Error(t, err)
}
