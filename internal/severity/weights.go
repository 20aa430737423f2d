package severity

import "github.com/yourusername/gridiron-prophet/internal/models"

// Weights carries the scoring tables. Values are fixed at construction; the
// scorer never mutates them.
type Weights struct {
	Position map[string]float64
	Status   map[models.InjuryStatus]float64

	// Fallbacks for positions and statuses outside the tables. Conservative
	// middle values, neither zero nor max.
	DefaultPosition float64
	DefaultStatus   float64

	// DefaultImportance applies to players with no usage history at all.
	DefaultImportance float64

	// MinImportance excludes emergency inactives from the team aggregate.
	MinImportance float64

	// CriticalScore marks an individual injury as critical on its own.
	CriticalScore float64

	Scale float64
}

// DefaultWeights returns the production scoring tables.
func DefaultWeights() Weights {
	return Weights{
		Position: map[string]float64{
			"QB": 1.0,
			"WR": 0.6,
			"RB": 0.6,
			"TE": 0.5,
			"OT": 0.7,
			"OG": 0.5,
			"G":  0.5,
			"C":  0.6,
			"DE": 0.75,
			"DT": 0.65,
			"LB": 0.65,
			"CB": 0.75,
			"S":  0.6,
			"DB": 0.65,
			"DL": 0.7,
			"K":  0.2,
			"P":  0.1,
			"LS": 0.1,
			"FB": 0.3,
		},
		Status: map[models.InjuryStatus]float64{
			models.StatusOut:          1.0,
			models.StatusIR:           1.0,
			models.StatusDoubtful:     0.8,
			models.StatusQuestionable: 0.4,
			models.StatusPUP:          0.9,
			models.StatusNFI:          0.9,
		},
		DefaultPosition:   0.5,
		DefaultStatus:     0.5,
		DefaultImportance: 0.3,
		MinImportance:     0.15,
		CriticalScore:     4.0,
		Scale:             10.0,
	}
}

// PositionWeight returns the table weight for a position.
func (w Weights) PositionWeight(position string) float64 {
	if weight, ok := w.Position[position]; ok {
		return weight
	}
	return w.DefaultPosition
}

// StatusMultiplier returns the table multiplier for an injury status.
func (w Weights) StatusMultiplier(status models.InjuryStatus) float64 {
	if mult, ok := w.Status[status]; ok {
		return mult
	}
	return w.DefaultStatus
}
