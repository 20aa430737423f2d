// Package service wires data sources, the reconciliation engine and the
// prediction pipeline into the operations the commands and scheduler invoke.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/datasource"
	"github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/reconcile"
	"github.com/yourusername/gridiron-prophet/internal/season"
)

// Reconciler is the slice of the reconciliation engine the sync service needs
type Reconciler interface {
	Reconcile(ctx context.Context, snapshot []models.InjurySnapshotRow, currentWeek int) (reconcile.Stats, error)
}

// InjurySyncService runs the snapshot-fetch-and-reconcile pass
type InjurySyncService struct {
	source   datasource.InjurySource
	engine   Reconciler
	calendar *season.Calendar
	log      *logger.PassLogger
}

// NewInjurySyncService creates a new injury sync service
func NewInjurySyncService(source datasource.InjurySource, engine Reconciler, calendar *season.Calendar, baseLogger *logrus.Logger) *InjurySyncService {
	return &InjurySyncService{
		source:   source,
		engine:   engine,
		calendar: calendar,
		log:      logger.NewPassLogger(baseLogger),
	}
}

// RunPass fetches the current injury snapshot and reconciles it against
// persisted state. A failed fetch aborts the pass before any write; the
// prior state stays authoritative and is reported as stale.
func (s *InjurySyncService) RunPass(ctx context.Context) (reconcile.Stats, error) {
	week := s.calendar.CurrentWeek(time.Now())
	metrics.UpdateCurrentWeek(week)

	snapshot, err := s.source.FetchInjuries(ctx)
	if err != nil {
		metrics.RecordSnapshotFetchFailure()
		s.log.LogPassAborted(s.calendar.Season(), week, err)
		return reconcile.Stats{}, err
	}

	return s.engine.Reconcile(ctx, snapshot, week)
}

// CurrentWeek exposes the calendar's view of the week a pass would target
func (s *InjurySyncService) CurrentWeek() int {
	return s.calendar.CurrentWeek(time.Now())
}
