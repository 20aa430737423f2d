package ml

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/config"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testFeatures() MatchupFeatures {
	return MatchupFeatures{
		HomeWins: 4, HomeLosses: 1, HomeWinPct: 0.8,
		HomePointsScored: 27.2, HomePointsAllowed: 18.4,
		AwayWins: 1, AwayLosses: 4, AwayWinPct: 0.2,
		AwayPointsScored: 17.0, AwayPointsAllowed: 26.8,
	}
}

func newTestClassifier(url string) *HTTPClassifier {
	return NewHTTPClassifier(&config.ClassifierConfig{
		HTTPAddress:           url,
		ModelVersion:          "test-model",
		RequestTimeoutSeconds: 5,
		RetryAttempts:         0,
		CacheTTLSeconds:       60,
		CacheMaxSize:          100,
	}, testLogger())
}

func TestFeatureVector(t *testing.T) {
	vector := testFeatures().Vector()
	require.Len(t, vector, FeatureCount)
	assert.Equal(t, 4.0, vector[0])
	assert.Equal(t, 0.8, vector[2])
	assert.Equal(t, 26.8, vector[9])
}

func TestPredictProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/predict", r.URL.Path)

		var req PredictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Features, FeatureCount)
		assert.Equal(t, FeatureVersion, req.FeatureVersion)
		assert.Equal(t, "test-model", req.ModelVersion)

		json.NewEncoder(w).Encode(PredictResponse{Probability: 0.65, ModelVersion: "test-model"})
	}))
	defer server.Close()

	client := newTestClassifier(server.URL)
	probability, err := client.PredictProbability(context.Background(), testFeatures())
	require.NoError(t, err)
	assert.InDelta(t, 0.65, probability, 1e-9)
}

func TestPredictProbabilityOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictResponse{Probability: 1.4})
	}))
	defer server.Close()

	client := newTestClassifier(server.URL)
	_, err := client.PredictProbability(context.Background(), testFeatures())
	assert.ErrorIs(t, err, ErrInvalidPrediction)
}

func TestPredictProbabilityServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClassifier(server.URL)
	_, err := client.PredictProbability(context.Background(), testFeatures())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPredictProbabilityUnreachable(t *testing.T) {
	client := newTestClassifier("http://127.0.0.1:1")
	_, err := client.PredictProbability(context.Background(), testFeatures())
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClassifier(server.URL)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestPingUnhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClassifier(server.URL)
	assert.ErrorIs(t, client.Ping(context.Background()), ErrClassifierUnavailable)
}
