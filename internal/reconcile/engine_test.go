package reconcile

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/models"
)

// MockResolver mocks the player resolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, rawName, team, position string) (*models.Player, error) {
	args := m.Called(ctx, rawName, team, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockResolver) ResetCache() {
	m.Called()
}

// MockInjuryRepository mocks injury repository
type MockInjuryRepository struct {
	mock.Mock
}

func (m *MockInjuryRepository) Create(ctx context.Context, record *models.InjuryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInjuryRepository) Update(ctx context.Context, record *models.InjuryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInjuryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInjuryRepository) ListBySeason(ctx context.Context, season int) ([]*models.InjuryDetail, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InjuryDetail), args.Error(1)
}

func (m *MockInjuryRepository) ListByTeamWeek(ctx context.Context, team string, season, week int) ([]*models.InjuryDetail, error) {
	args := m.Called(ctx, team, season, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InjuryDetail), args.Error(1)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func snapshotRow(name, team, position string, status models.InjuryStatus) models.InjurySnapshotRow {
	return models.InjurySnapshotRow{
		RawName:      name,
		Team:         team,
		Position:     position,
		Status:       status,
		BodyPart:     "Knee",
		DateReported: time.Date(2025, time.October, 8, 0, 0, 0, 0, time.UTC),
	}
}

func detail(playerID uuid.UUID, name, team string, week int, status models.InjuryStatus) *models.InjuryDetail {
	return &models.InjuryDetail{
		InjuryRecord: models.InjuryRecord{
			ID:       uuid.New(),
			PlayerID: playerID,
			Season:   2025,
			Week:     week,
			Team:     team,
			Status:   status,
		},
		PlayerName: name,
		Position:   "WR",
	}
}

func TestClassify(t *testing.T) {
	existing := &models.InjuryRecord{Week: 6, Status: models.StatusQuestionable}

	tests := []struct {
		name     string
		existing *models.InjuryRecord
		status   models.InjuryStatus
		week     int
		expected Transition
	}{
		{"no persisted record", nil, models.StatusOut, 6, TransitionNew},
		{"status changed", existing, models.StatusOut, 6, TransitionUpdated},
		{"week rolled forward", existing, models.StatusQuestionable, 7, TransitionUpdated},
		{"identical status and week", existing, models.StatusQuestionable, 6, TransitionUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.existing, tt.status, tt.week))
		})
	}
}

func TestReconcileNewInjury(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	player := &models.Player{ID: uuid.New(), Name: "CeeDee Lamb", Position: "WR"}
	res.On("ResetCache").Return()
	res.On("Resolve", mock.Anything, "CeeDee Lamb", "DAL", "WR").Return(player, nil)
	repo.On("ListBySeason", mock.Anything, 2025).Return([]*models.InjuryDetail{}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.InjuryRecord) bool {
		return r.PlayerID == player.ID && r.Week == 6 && r.Status == models.StatusOut
	})).Return(nil)

	stats, err := engine.Reconcile(context.Background(),
		[]models.InjurySnapshotRow{snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut)}, 6)

	require.NoError(t, err)
	assert.Equal(t, Stats{New: 1}, stats)
	repo.AssertExpectations(t)
}

func TestReconcileStatusChange(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	player := &models.Player{ID: uuid.New(), Name: "CeeDee Lamb", Position: "WR"}
	persisted := detail(player.ID, "CeeDee Lamb", "DAL", 6, models.StatusQuestionable)

	res.On("ResetCache").Return()
	res.On("Resolve", mock.Anything, "CeeDee Lamb", "DAL", "WR").Return(player, nil)
	repo.On("ListBySeason", mock.Anything, 2025).Return([]*models.InjuryDetail{persisted}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(r *models.InjuryRecord) bool {
		return r.ID == persisted.ID && r.Status == models.StatusOut && r.Week == 6
	})).Return(nil)

	stats, err := engine.Reconcile(context.Background(),
		[]models.InjurySnapshotRow{snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut)}, 6)

	require.NoError(t, err)
	assert.Equal(t, Stats{Updated: 1}, stats)
	repo.AssertExpectations(t)
}

func TestReconcileIdempotent(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	player := &models.Player{ID: uuid.New(), Name: "CeeDee Lamb", Position: "WR"}
	persisted := detail(player.ID, "CeeDee Lamb", "DAL", 6, models.StatusOut)

	res.On("ResetCache").Return()
	res.On("Resolve", mock.Anything, "CeeDee Lamb", "DAL", "WR").Return(player, nil)
	repo.On("ListBySeason", mock.Anything, 2025).Return([]*models.InjuryDetail{persisted}, nil)

	stats, err := engine.Reconcile(context.Background(),
		[]models.InjurySnapshotRow{snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut)}, 6)

	require.NoError(t, err)
	assert.Equal(t, Stats{Unchanged: 1}, stats)
	assert.Zero(t, stats.Writes())
	// No Create, Update, or Delete was set up; any write would have failed
	repo.AssertExpectations(t)
}

func TestReconcileResolvesCurrentWeekOnly(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	player := &models.Player{ID: uuid.New(), Name: "CeeDee Lamb", Position: "WR"}
	healed := detail(uuid.New(), "Jake Ferguson", "DAL", 6, models.StatusQuestionable)
	pastWeek := detail(uuid.New(), "Tony Pollard", "TEN", 4, models.StatusIR)

	res.On("ResetCache").Return()
	res.On("Resolve", mock.Anything, "CeeDee Lamb", "DAL", "WR").Return(player, nil)
	repo.On("ListBySeason", mock.Anything, 2025).
		Return([]*models.InjuryDetail{healed, pastWeek}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, healed.ID).Return(nil)

	stats, err := engine.Reconcile(context.Background(),
		[]models.InjurySnapshotRow{snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut)}, 6)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Resolved)
	// Week 4 record survives the week 6 pass
	repo.AssertNotCalled(t, "Delete", mock.Anything, pastWeek.ID)
}

func TestReconcileResolutionFailureSkipsRow(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	player := &models.Player{ID: uuid.New(), Name: "CeeDee Lamb", Position: "WR"}
	res.On("ResetCache").Return()
	res.On("Resolve", mock.Anything, "Unknown Rookie", "DAL", "TE").
		Return(nil, models.ErrPlayerNotFound)
	res.On("Resolve", mock.Anything, "CeeDee Lamb", "DAL", "WR").Return(player, nil)
	repo.On("ListBySeason", mock.Anything, 2025).Return([]*models.InjuryDetail{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	stats, err := engine.Reconcile(context.Background(), []models.InjurySnapshotRow{
		snapshotRow("Unknown Rookie", "DAL", "TE", models.StatusQuestionable),
		snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut),
	}, 6)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.NotFound)
	assert.Equal(t, 1, stats.New)
}

func TestReconcileEmptySnapshotAborts(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	stats, err := engine.Reconcile(context.Background(), nil, 6)

	assert.ErrorIs(t, err, models.ErrEmptySnapshot)
	assert.Zero(t, stats.Writes())
	repo.AssertNotCalled(t, "ListBySeason", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcileDuplicateSnapshotRows(t *testing.T) {
	res := new(MockResolver)
	repo := new(MockInjuryRepository)
	engine := NewEngine(res, repo, 2025, testLogger())

	player := &models.Player{ID: uuid.New(), Name: "CeeDee Lamb", Position: "WR"}
	res.On("ResetCache").Return()
	res.On("Resolve", mock.Anything, "CeeDee Lamb", "DAL", "WR").Return(player, nil)
	repo.On("ListBySeason", mock.Anything, 2025).Return([]*models.InjuryDetail{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	stats, err := engine.Reconcile(context.Background(), []models.InjurySnapshotRow{
		snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut),
		snapshotRow("CeeDee Lamb", "DAL", "WR", models.StatusOut),
	}, 6)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.New)
	repo.AssertExpectations(t)
}
