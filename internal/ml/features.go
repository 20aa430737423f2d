package ml

// FeatureVersion identifies the feature vector layout. The classifier service
// rejects requests whose version it was not trained against, so this only
// changes together with a retrained model.
const FeatureVersion = "v1"

// FeatureCount is the fixed length of a v1 feature vector.
const FeatureCount = 10

// MatchupFeatures is the model input for one game, home side first.
type MatchupFeatures struct {
	HomeWins          float64
	HomeLosses        float64
	HomeWinPct        float64
	HomePointsScored  float64
	HomePointsAllowed float64
	AwayWins          float64
	AwayLosses        float64
	AwayWinPct        float64
	AwayPointsScored  float64
	AwayPointsAllowed float64
}

// Vector flattens the features into the wire layout the model expects.
// Field order here is the contract; never reorder without bumping
// FeatureVersion.
func (f MatchupFeatures) Vector() []float64 {
	return []float64{
		f.HomeWins,
		f.HomeLosses,
		f.HomeWinPct,
		f.HomePointsScored,
		f.HomePointsAllowed,
		f.AwayWins,
		f.AwayLosses,
		f.AwayWinPct,
		f.AwayPointsScored,
		f.AwayPointsAllowed,
	}
}
