package ml

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionCache(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)

	key := CacheKey{GameID: uuid.New(), ModelVersion: "m1", FeatureVersion: FeatureVersion}

	_, found := pc.Get(key)
	assert.False(t, found)

	pc.Set(key, 0.62)
	probability, found := pc.Get(key)
	assert.True(t, found)
	assert.InDelta(t, 0.62, probability, 1e-9)

	hits, misses, ratio := pc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 1e-9)
}

func TestPredictionCacheKeyedByModelVersion(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)
	gameID := uuid.New()

	pc.Set(CacheKey{GameID: gameID, ModelVersion: "m1", FeatureVersion: FeatureVersion}, 0.7)

	_, found := pc.Get(CacheKey{GameID: gameID, ModelVersion: "m2", FeatureVersion: FeatureVersion})
	assert.False(t, found)
}

func TestPredictionCacheClear(t *testing.T) {
	pc := NewPredictionCache(time.Minute, 100)

	pc.Set(CacheKey{GameID: uuid.New(), ModelVersion: "m1", FeatureVersion: FeatureVersion}, 0.5)
	require.Equal(t, 1, pc.ItemCount())

	pc.Clear()
	assert.Equal(t, 0, pc.ItemCount())

	hits, misses, _ := pc.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestPredictionCacheExpiry(t *testing.T) {
	pc := NewPredictionCache(10*time.Millisecond, 100)

	key := CacheKey{GameID: uuid.New(), ModelVersion: "m1", FeatureVersion: FeatureVersion}
	pc.Set(key, 0.55)

	time.Sleep(30 * time.Millisecond)

	_, found := pc.Get(key)
	assert.False(t, found)
}

// fakeClassifier counts upstream calls for cached-client tests
type fakeClassifier struct {
	probability float64
	calls       int
}

func (f *fakeClassifier) PredictProbability(ctx context.Context, features MatchupFeatures) (float64, error) {
	f.calls++
	return f.probability, nil
}

func (f *fakeClassifier) ModelVersion() string { return "fake" }

func (f *fakeClassifier) Ping(ctx context.Context) error { return nil }

func TestCachedClassifierServesFromCache(t *testing.T) {
	fake := &fakeClassifier{probability: 0.58}
	cached := NewCachedClassifierFor(fake, NewPredictionCache(time.Minute, 100), testLogger())

	gameID := uuid.New()
	features := testFeatures()

	p1, err := cached.PredictWinProbability(context.Background(), gameID, features)
	require.NoError(t, err)
	p2, err := cached.PredictWinProbability(context.Background(), gameID, features)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, 1, fake.calls)

	cached.InvalidateAll()
	_, err = cached.PredictWinProbability(context.Background(), gameID, features)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls)
}
