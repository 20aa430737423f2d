// Package severity scores the expected impact of player unavailability.
package severity

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
)

// ScoredInjury is one injury with its computed impact, ready for reporting.
type ScoredInjury struct {
	PlayerName string              `json:"player"`
	Position   string              `json:"position"`
	Status     models.InjuryStatus `json:"status"`
	BodyPart   string              `json:"body_part"`
	Importance float64             `json:"importance"`
	Score      float64             `json:"score"`
}

// TeamImpact is the aggregate injury picture for one team and week.
type TeamImpact struct {
	Team            string         `json:"team"`
	TotalImpact     float64        `json:"total_impact"`
	InjuryCount     int            `json:"injury_count"`
	SkippedInactive int            `json:"skipped_inactive"`
	Injuries        []ScoredInjury `json:"injuries"`
	Critical        []ScoredInjury `json:"critical_injuries"`
}

// Scorer computes per-player impact scores and per-team aggregates from
// persisted injury and usage state.
type Scorer struct {
	weights  Weights
	injuries repository.InjuryRepository
	usage    repository.UsageRepository
	log      *logrus.Entry
}

// NewScorer creates a severity scorer with the given weight tables.
func NewScorer(injuries repository.InjuryRepository, usage repository.UsageRepository, weights Weights, baseLogger *logrus.Logger) *Scorer {
	return &Scorer{
		weights:  weights,
		injuries: injuries,
		usage:    usage,
		log:      baseLogger.WithField("component", "severity"),
	}
}

// Score computes the impact of one injury given the player's importance.
// Pure arithmetic over the weight tables.
func (s *Scorer) Score(position string, status models.InjuryStatus, importance float64) float64 {
	return s.weights.PositionWeight(position) * s.weights.StatusMultiplier(status) * importance * s.weights.Scale
}

// Importance derives how much of the team's expected production routes
// through a player, in [0, 1]. Snap-share history dominates when present;
// depth-chart order serves as heuristic fallback; with neither, the global
// default applies. Never fails.
func (s *Scorer) Importance(summary *models.UsageSummary) float64 {
	if summary == nil {
		return s.weights.DefaultImportance
	}

	if summary.AvgSnapPct != nil {
		snapFactor := math.Min(*summary.AvgSnapPct/100.0, 1.0)

		depthBonus := 0.0
		if summary.DepthOrder != nil && *summary.DepthOrder <= 5 {
			depthBonus = float64(6-*summary.DepthOrder) * 0.1
		}

		return math.Min(snapFactor+depthBonus, 1.0)
	}

	if summary.DepthOrder != nil {
		depth := *summary.DepthOrder
		switch {
		case depth == 1 && summary.Position == "QB":
			return 1.0
		case depth == 1:
			return 0.85
		case depth == 2:
			return 0.7
		case depth <= 5:
			return 0.5
		default:
			return 0.3
		}
	}

	return s.weights.DefaultImportance
}

// TeamImpact aggregates the scored injuries for one team and week. Players
// below the importance floor are skipped and tallied separately. Critical
// injuries are any quarterback absence plus anything at or above the score
// cutoff, sorted descending by score.
func (s *Scorer) TeamImpact(ctx context.Context, team string, season, week int) (*TeamImpact, error) {
	details, err := s.injuries.ListByTeamWeek(ctx, team, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list injuries for %s: %w", team, err)
	}

	impact := &TeamImpact{Team: team}

	for _, detail := range details {
		summary, err := s.usage.GetUsageSummary(ctx, detail.PlayerID, season, week)
		if err != nil {
			s.log.WithError(err).WithField("player", detail.PlayerName).
				Warn("Usage lookup failed, using default importance")
			summary = nil
		}

		importance := s.Importance(summary)
		if importance < s.weights.MinImportance {
			impact.SkippedInactive++
			continue
		}

		scored := ScoredInjury{
			PlayerName: detail.PlayerName,
			Position:   detail.Position,
			Status:     detail.Status,
			BodyPart:   detail.BodyPart,
			Importance: importance,
			Score:      s.Score(detail.Position, detail.Status, importance),
		}

		impact.TotalImpact += scored.Score
		impact.Injuries = append(impact.Injuries, scored)

		if (detail.Position == "QB" && detail.IsAbsence()) || scored.Score >= s.weights.CriticalScore {
			impact.Critical = append(impact.Critical, scored)
		}
	}

	impact.InjuryCount = len(impact.Injuries)

	sort.Slice(impact.Injuries, func(i, j int) bool {
		return impact.Injuries[i].Score > impact.Injuries[j].Score
	})
	sort.Slice(impact.Critical, func(i, j int) bool {
		return impact.Critical[i].Score > impact.Critical[j].Score
	})

	return impact, nil
}
