package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/datasource"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/reconcile"
	"github.com/yourusername/gridiron-prophet/internal/season"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// MockInjurySource mocks datasource.InjurySource
type MockInjurySource struct {
	mock.Mock
}

func (m *MockInjurySource) FetchInjuries(ctx context.Context) ([]models.InjurySnapshotRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InjurySnapshotRow), args.Error(1)
}

func (m *MockInjurySource) Name() string    { return "mock" }
func (m *MockInjurySource) IsEnabled() bool { return true }

// MockReconciler mocks the reconciliation engine
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, snapshot []models.InjurySnapshotRow, currentWeek int) (reconcile.Stats, error) {
	args := m.Called(ctx, snapshot, currentWeek)
	return args.Get(0).(reconcile.Stats), args.Error(1)
}

// MockOddsSource mocks datasource.OddsSource
type MockOddsSource struct {
	mock.Mock
}

func (m *MockOddsSource) FetchLines(ctx context.Context, seasonYear, week int) ([]models.MarketLine, error) {
	args := m.Called(ctx, seasonYear, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarketLine), args.Error(1)
}

func (m *MockOddsSource) Name() string    { return "mock_odds" }
func (m *MockOddsSource) IsEnabled() bool { return true }

// MockRosterSource mocks datasource.RosterSource
type MockRosterSource struct {
	mock.Mock
}

func (m *MockRosterSource) FetchRoster(ctx context.Context, team string) ([]datasource.RosterRow, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datasource.RosterRow), args.Error(1)
}

func (m *MockRosterSource) Name() string    { return "mock_roster" }
func (m *MockRosterSource) IsEnabled() bool { return true }

// MockGameRepository mocks repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) ListByWeek(ctx context.Context, seasonYear, week int) ([]*models.Game, error) {
	args := m.Called(ctx, seasonYear, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *MockGameRepository) RecentSamples(ctx context.Context, team string, seasonYear, beforeWeek, limit int) ([]models.TeamPerformanceSample, error) {
	args := m.Called(ctx, team, seasonYear, beforeWeek, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamPerformanceSample), args.Error(1)
}

func (m *MockGameRepository) SeasonSamples(ctx context.Context, team string, seasonYear int) ([]models.TeamPerformanceSample, error) {
	args := m.Called(ctx, team, seasonYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamPerformanceSample), args.Error(1)
}

// MockMarketLineRepository mocks repository.MarketLineRepository
type MockMarketLineRepository struct {
	mock.Mock
}

func (m *MockMarketLineRepository) Create(ctx context.Context, line *models.MarketLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockMarketLineRepository) ListForMatchup(ctx context.Context, seasonYear, week int, homeTeam, awayTeam string) ([]models.MarketLine, error) {
	args := m.Called(ctx, seasonYear, week, homeTeam, awayTeam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarketLine), args.Error(1)
}

// MockRecommendationRepository mocks repository.RecommendationRepository
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Upsert(ctx context.Context, rec *models.Recommendation) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRecommendationRepository) ListByWeek(ctx context.Context, seasonYear, week int) ([]*models.Recommendation, error) {
	args := m.Called(ctx, seasonYear, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) UpdateResult(ctx context.Context, rec *models.Recommendation) error {
	return m.Called(ctx, rec).Error(0)
}

func TestRunPassReconcilesSnapshot(t *testing.T) {
	source := new(MockInjurySource)
	engine := new(MockReconciler)

	snapshot := []models.InjurySnapshotRow{
		{RawName: "Pat Surtain II", Team: "DEN", Position: "CB", Status: models.StatusQuestionable},
	}
	source.On("FetchInjuries", mock.Anything).Return(snapshot, nil)
	engine.On("Reconcile", mock.Anything, snapshot, mock.AnythingOfType("int")).
		Return(reconcile.Stats{New: 1}, nil)

	svc := NewInjurySyncService(source, engine, season.Calendar2025(), testLogger())

	stats, err := svc.RunPass(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.New)
	engine.AssertExpectations(t)
}

func TestRunPassFetchFailureAborts(t *testing.T) {
	source := new(MockInjurySource)
	engine := new(MockReconciler)

	source.On("FetchInjuries", mock.Anything).Return(nil, errors.New("feed unreachable"))

	svc := NewInjurySyncService(source, engine, season.Calendar2025(), testLogger())

	_, err := svc.RunPass(context.Background())
	require.Error(t, err)
	engine.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
}
