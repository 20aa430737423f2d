package edge

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-prophet/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func prediction(predictedLine float64) *models.Prediction {
	return &models.Prediction{
		ID:            uuid.New(),
		GameID:        uuid.New(),
		Season:        2025,
		Week:          6,
		HomeTeam:      "DEN",
		AwayTeam:      "NYJ",
		PredictedLine: predictedLine,
		Confidence:    models.ConfidenceMedium,
	}
}

func consensus(spread float64) *models.ConsensusLine {
	d := decimal.NewFromFloat(spread)
	return &models.ConsensusLine{HomeTeam: "DEN", AwayTeam: "NYJ", Spread: &d, Sources: 1}
}

func TestClassifyEdgeThresholdBoundary(t *testing.T) {
	c := NewClassifier(3.0, testLogger())

	// Market has the home side at -3.5; the model line sits 2.999 under it
	pass := c.Classify(prediction(-6.499), consensus(-3.5))
	assert.True(t, pass.IsPass())
	assert.Equal(t, ReasonSmallEdge, pass.Reason)
	require.NotNil(t, pass.Edge)
	assert.InDelta(t, -2.999, *pass.Edge, 1e-9)

	// At exactly 3.0 the recommendation fires
	bet := c.Classify(prediction(-6.5), consensus(-3.5))
	assert.False(t, bet.IsPass())
	require.NotNil(t, bet.Edge)
	assert.InDelta(t, -3.0, *bet.Edge, 1e-9)
}

func TestClassifySides(t *testing.T) {
	c := NewClassifier(3.0, testLogger())

	tests := []struct {
		name          string
		predictedLine float64
		marketSpread  float64
		expectedSide  string
	}{
		{
			// Model likes the home side more than the market's home-favored quote
			name:          "home favored, bet home",
			predictedLine: -7.0,
			marketSpread:  -3.5,
			expectedSide:  "DEN -3.5",
		},
		{
			// Market has home as the underdog but the model disagrees
			name:          "away favored, bet home with points",
			predictedLine: -1.0,
			marketSpread:  3.5,
			expectedSide:  "DEN +3.5",
		},
		{
			// Model likes the away side against a home-favored market
			name:          "home favored, bet away with points",
			predictedLine: 0.5,
			marketSpread:  -3.5,
			expectedSide:  "NYJ +3.5",
		},
		{
			// Market underrates the away side even at a home-dog quote
			name:          "away favored, bet away laying more",
			predictedLine: 7.0,
			marketSpread:  3.5,
			expectedSide:  "NYJ -3.5",
		},
		{
			name:          "pickem bet home",
			predictedLine: -4.0,
			marketSpread:  0.0,
			expectedSide:  "DEN PK",
		},
		{
			name:          "pickem bet away",
			predictedLine: 4.0,
			marketSpread:  0.0,
			expectedSide:  "NYJ PK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.Classify(prediction(tt.predictedLine), consensus(tt.marketSpread))
			assert.Equal(t, tt.expectedSide, rec.Side)
			assert.False(t, rec.IsPass())
		})
	}
}

func TestClassifyNoSpread(t *testing.T) {
	c := NewClassifier(3.0, testLogger())

	rec := c.Classify(prediction(-6.0), nil)
	assert.True(t, rec.IsPass())
	assert.Equal(t, ReasonNoSpread, rec.Reason)
	assert.Nil(t, rec.MarketLine)
	assert.Nil(t, rec.Edge)

	// Consensus exists but no book quoted a spread
	rec = c.Classify(prediction(-6.0), &models.ConsensusLine{HomeTeam: "DEN", AwayTeam: "NYJ"})
	assert.True(t, rec.IsPass())
	assert.Equal(t, ReasonNoSpread, rec.Reason)
}

func TestClassifyCarriesPredictionFields(t *testing.T) {
	c := NewClassifier(3.0, testLogger())

	pred := prediction(-6.5)
	rec := c.Classify(pred, consensus(-3.5))

	assert.Equal(t, pred.GameID, rec.GameID)
	assert.Equal(t, pred.Season, rec.Season)
	assert.Equal(t, pred.Week, rec.Week)
	assert.Equal(t, models.ConfidenceMedium, rec.Confidence)
	assert.InDelta(t, -6.5, rec.PredictedLine, 1e-9)
}

func TestAggregateLines(t *testing.T) {
	spread := func(f float64) *decimal.Decimal { d := decimal.NewFromFloat(f); return &d }

	lines := []models.MarketLine{
		{HomeTeam: "DEN", AwayTeam: "NYJ", Source: "draftkings", Spread: spread(-3.5), Total: spread(44.5)},
		{HomeTeam: "DEN", AwayTeam: "NYJ", Source: "fanduel", Spread: spread(-4.5)},
		{HomeTeam: "DEN", AwayTeam: "NYJ", Source: "betmgm"},
	}

	c := models.AggregateLines(lines)
	require.True(t, c.HasSpread())
	assert.Equal(t, 2, c.Sources)

	mean, _ := c.Spread.Float64()
	assert.InDelta(t, -4.0, mean, 1e-9)

	assert.Nil(t, models.AggregateLines(nil))
}
