package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/config"
)

// Classifier produces a home-team win probability for a feature vector.
type Classifier interface {
	PredictProbability(ctx context.Context, features MatchupFeatures) (float64, error)
	ModelVersion() string
	Ping(ctx context.Context) error
}

// HTTPClassifier talks to the classifier service over HTTP+JSON.
type HTTPClassifier struct {
	client       *http.Client
	baseURL      string
	modelVersion string
	retries      int
	logger       *logrus.Logger
}

// NewHTTPClassifier creates a classifier client from configuration.
func NewHTTPClassifier(cfg *config.ClassifierConfig, logger *logrus.Logger) *HTTPClassifier {
	return &HTTPClassifier{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL:      cfg.HTTPAddress,
		modelVersion: cfg.ModelVersion,
		retries:      cfg.RetryAttempts,
		logger:       logger,
	}
}

// PredictRequest represents the prediction request payload
type PredictRequest struct {
	Features       []float64 `json:"features"`
	ModelVersion   string    `json:"model_version,omitempty"`
	FeatureVersion string    `json:"feature_version"`
}

// PredictResponse represents the prediction response
type PredictResponse struct {
	Probability  float64 `json:"probability"`
	ModelVersion string  `json:"model_version"`
}

// PredictProbability returns the home-team win probability in [0, 1].
func (c *HTTPClassifier) PredictProbability(ctx context.Context, features MatchupFeatures) (float64, error) {
	vector := features.Vector()
	if len(vector) != FeatureCount {
		ClassifierErrorsTotal.WithLabelValues("features").Inc()
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrInvalidFeatures, len(vector), FeatureCount)
	}

	start := time.Now()
	defer func() {
		ClassifierPredictionLatency.Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		probability, err := c.predict(ctx, vector)
		if err == nil {
			return probability, nil
		}
		lastErr = err

		// Malformed responses will not improve on retry
		if errors.Is(err, ErrInvalidPrediction) {
			break
		}

		c.logger.WithError(err).WithField("attempt", attempt+1).
			Warn("Classifier request failed")
	}

	return 0, lastErr
}

func (c *HTTPClassifier) predict(ctx context.Context, vector []float64) (float64, error) {
	reqBody := PredictRequest{
		Features:       vector,
		ModelVersion:   c.modelVersion,
		FeatureVersion: FeatureVersion,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		ClassifierErrorsTotal.WithLabelValues("network").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return 0, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ClassifierErrorsTotal.WithLabelValues("http_error").Inc()
		return 0, fmt.Errorf("prediction request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var predResp PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		ClassifierErrorsTotal.WithLabelValues("decode").Inc()
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if predResp.Probability < 0 || predResp.Probability > 1 {
		ClassifierErrorsTotal.WithLabelValues("invalid").Inc()
		return 0, fmt.Errorf("%w: probability %f outside [0,1]", ErrInvalidPrediction, predResp.Probability)
	}

	return predResp.Probability, nil
}

// ModelVersion returns the configured model version.
func (c *HTTPClassifier) ModelVersion() string {
	return c.modelVersion
}

// Ping checks classifier service health.
func (c *HTTPClassifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", ErrClassifierUnavailable, resp.StatusCode)
	}

	return nil
}
