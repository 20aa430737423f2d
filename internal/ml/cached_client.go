// Package ml provides the cached classifier client.
package ml

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/config"
)

// CachedClassifier wraps a Classifier with per-game prediction caching.
// Within one analysis run every recomputation for the same game and feature
// layout is served from memory.
type CachedClassifier struct {
	classifier Classifier
	cache      *PredictionCache
	logger     *logrus.Logger
}

// NewCachedClassifier creates a cached classifier client from configuration.
func NewCachedClassifier(cfg *config.ClassifierConfig, logger *logrus.Logger) *CachedClassifier {
	return &CachedClassifier{
		classifier: NewHTTPClassifier(cfg, logger),
		cache: NewPredictionCache(
			time.Duration(cfg.CacheTTLSeconds)*time.Second,
			cfg.CacheMaxSize,
		),
		logger: logger,
	}
}

// NewCachedClassifierFor wraps an existing classifier with the given cache.
func NewCachedClassifierFor(classifier Classifier, cache *PredictionCache, logger *logrus.Logger) *CachedClassifier {
	return &CachedClassifier{classifier: classifier, cache: cache, logger: logger}
}

// PredictWinProbability returns the home-team win probability for a game,
// consulting the cache first.
func (c *CachedClassifier) PredictWinProbability(ctx context.Context, gameID uuid.UUID, features MatchupFeatures) (float64, error) {
	key := CacheKey{
		GameID:         gameID,
		ModelVersion:   c.classifier.ModelVersion(),
		FeatureVersion: FeatureVersion,
	}

	if probability, found := c.cache.Get(key); found {
		c.logger.WithField("cache_key", key.String()).Debug("Cache hit for prediction")
		ClassifierPredictionsTotal.WithLabelValues("true").Inc()
		return probability, nil
	}

	probability, err := c.classifier.PredictProbability(ctx, features)
	if err != nil {
		return 0, err
	}

	ClassifierPredictionsTotal.WithLabelValues("false").Inc()
	c.cache.Set(key, probability)
	return probability, nil
}

// Ping checks classifier service health.
func (c *CachedClassifier) Ping(ctx context.Context) error {
	return c.classifier.Ping(ctx)
}

// InvalidateAll drops every cached prediction, used when the model version
// changes at runtime.
func (c *CachedClassifier) InvalidateAll() {
	c.cache.Clear()
}
