// Package reconcile diffs external injury snapshots against persisted state.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
)

// PlayerResolver maps raw feed names to persisted players.
type PlayerResolver interface {
	Resolve(ctx context.Context, rawName, team, position string) (*models.Player, error)
	ResetCache()
}

// Stats is the aggregate outcome of one reconciliation pass.
type Stats struct {
	New       int `json:"new"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Resolved  int `json:"resolved"`
	NotFound  int `json:"not_found"`
	Errors    int `json:"errors"`
}

// Writes reports how many persisted rows the pass touched.
func (s Stats) Writes() int {
	return s.New + s.Updated + s.Resolved
}

// Engine reconciles an injury report snapshot with the persisted
// current-season injury table. A pass is idempotent: running it twice on the
// same snapshot leaves every record unchanged on the second run.
type Engine struct {
	resolver PlayerResolver
	injuries repository.InjuryRepository
	season   int
	log      *logger.PassLogger
}

// NewEngine creates a reconciliation engine for one season.
func NewEngine(resolver PlayerResolver, injuries repository.InjuryRepository, season int, baseLogger *logrus.Logger) *Engine {
	return &Engine{
		resolver: resolver,
		injuries: injuries,
		season:   season,
		log:      logger.NewPassLogger(baseLogger),
	}
}

// Reconcile applies one snapshot taken during currentWeek. An empty snapshot
// aborts before any write: expiring every current injury because a fetch came
// back empty would be worse than running stale.
//
// Per-row resolution failures are counted and skipped; they never abort the
// batch. Only rows persisted for currentWeek are eligible for expiry, so a
// current-week pass cannot erase prior-week history.
func (e *Engine) Reconcile(ctx context.Context, snapshot []models.InjurySnapshotRow, currentWeek int) (Stats, error) {
	var stats Stats
	start := time.Now()

	if len(snapshot) == 0 {
		metrics.RecordSnapshotFetchFailure()
		e.log.LogPassAborted(e.season, currentWeek, models.ErrEmptySnapshot)
		return stats, models.ErrEmptySnapshot
	}

	e.resolver.ResetCache()

	existing, err := e.injuries.ListBySeason(ctx, e.season)
	if err != nil {
		return stats, fmt.Errorf("failed to load persisted injuries: %w", err)
	}

	persisted := make(map[uuid.UUID]*models.InjuryDetail, len(existing))
	for _, detail := range existing {
		persisted[detail.PlayerID] = detail
	}

	seen := make(map[uuid.UUID]bool, len(snapshot))

	for _, row := range snapshot {
		player, err := e.resolver.Resolve(ctx, row.RawName, row.Team, row.Position)
		if err != nil {
			if errors.Is(err, models.ErrPlayerNotFound) {
				stats.NotFound++
				metrics.RecordResolutionFailure()
				e.log.LogResolutionFailure(row.RawName, row.Team, currentWeek)
			} else {
				stats.Errors++
				e.log.WithError(err).WithField("player", row.RawName).Warn("Lookup error, skipping row")
			}
			continue
		}

		// A snapshot can list the same player twice when feeds duplicate
		// rows across report sections; only the first occurrence counts.
		if seen[player.ID] {
			continue
		}
		seen[player.ID] = true

		detail := persisted[player.ID]
		var current *models.InjuryRecord
		if detail != nil {
			current = &detail.InjuryRecord
		}

		transition := classify(current, row.Status, currentWeek)
		if err := e.apply(ctx, transition, current, player, row, currentWeek, &stats); err != nil {
			stats.Errors++
			e.log.WithError(err).WithField("player", row.RawName).Warn("Write failed, skipping row")
		}
	}

	for playerID, detail := range persisted {
		if seen[playerID] || detail.Week != currentWeek {
			continue
		}
		if err := e.injuries.Delete(ctx, detail.ID); err != nil {
			stats.Errors++
			e.log.WithError(err).WithField("player", detail.PlayerName).Warn("Expiry failed")
			continue
		}
		stats.Resolved++
		metrics.RecordTransition(string(TransitionResolved))
		e.log.LogTransition(string(TransitionResolved), detail.PlayerName, detail.Team,
			e.season, currentWeek, string(detail.Status), "")
	}

	active := len(persisted) - stats.Resolved + stats.New
	metrics.RecordPassComplete(time.Since(start).Seconds(), active)
	e.log.LogPassSummary(e.season, currentWeek, stats.New, stats.Updated, stats.Unchanged,
		stats.Resolved, stats.NotFound, stats.Errors, time.Since(start))

	return stats, nil
}

// apply writes one transition and updates stats and metrics.
func (e *Engine) apply(ctx context.Context, transition Transition, current *models.InjuryRecord, player *models.Player, row models.InjurySnapshotRow, currentWeek int, stats *Stats) error {
	switch transition {
	case TransitionNew:
		record := &models.InjuryRecord{
			ID:           uuid.New(),
			PlayerID:     player.ID,
			Season:       e.season,
			Week:         currentWeek,
			Team:         row.Team,
			Status:       row.Status,
			BodyPart:     row.BodyPart,
			Notes:        row.Notes,
			DateReported: row.DateReported,
		}
		if err := e.injuries.Create(ctx, record); err != nil {
			return err
		}
		stats.New++
		metrics.RecordTransition(string(TransitionNew))
		e.log.LogTransition(string(TransitionNew), player.Name, row.Team,
			e.season, currentWeek, "", string(row.Status))

	case TransitionUpdated:
		oldStatus := current.Status
		current.Status = row.Status
		current.Week = currentWeek
		current.Team = row.Team
		current.BodyPart = row.BodyPart
		current.Notes = row.Notes
		current.DateReported = row.DateReported
		if err := e.injuries.Update(ctx, current); err != nil {
			return err
		}
		stats.Updated++
		metrics.RecordTransition(string(TransitionUpdated))
		e.log.LogTransition(string(TransitionUpdated), player.Name, row.Team,
			e.season, currentWeek, string(oldStatus), string(row.Status))

	case TransitionUnchanged:
		stats.Unchanged++
		metrics.RecordTransition(string(TransitionUnchanged))
	}

	return nil
}
