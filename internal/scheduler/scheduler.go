// Package scheduler manages the recurring injury, roster and market-line jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/service"
)

// Scheduler manages the recurring sync and polling jobs
type Scheduler struct {
	cron            *cron.Cron
	injurySync      *service.InjurySyncService
	rosterSync      *service.RosterSyncService
	analysis        *service.AnalysisService
	log             *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(injurySync *service.InjurySyncService, rosterSync *service.RosterSyncService, analysis *service.AnalysisService, baseLogger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		injurySync:      injurySync,
		rosterSync:      rosterSync,
		analysis:        analysis,
		log:             baseLogger.WithField("component", "scheduler"),
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleInjurySync schedules the snapshot reconciliation pass
func (s *Scheduler) ScheduleInjurySync(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		stats, err := s.injurySync.RunPass(ctx)
		if err != nil {
			s.log.WithError(err).Error("Scheduled injury sync failed")
			return
		}
		s.log.WithFields(logrus.Fields{
			"new":      stats.New,
			"updated":  stats.Updated,
			"resolved": stats.Resolved,
		}).Info("Scheduled injury sync completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("cron", cronExpression).Info("Scheduled injury sync job")

	return nil
}

// ScheduleRosterSync schedules the full roster sweep
func (s *Scheduler) ScheduleRosterSync(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		stats, err := s.rosterSync.SyncAll(ctx)
		if err != nil {
			s.log.WithError(err).Error("Scheduled roster sync failed")
			return
		}
		s.log.WithFields(logrus.Fields{
			"new_players": stats.NewPlayers,
			"trades":      stats.Trades,
			"errors":      stats.Errors,
		}).Info("Scheduled roster sync completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("cron", cronExpression).Info("Scheduled roster sync job")

	return nil
}

// ScheduleLinePolling schedules bookmaker line refreshes at a fixed interval
func (s *Scheduler) ScheduleLinePolling(intervalSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if intervalSeconds < 60 {
		intervalSeconds = 60
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(intervalSeconds-1)*time.Second)
		defer cancel()

		week := s.injurySync.CurrentWeek()
		stored, err := s.analysis.RefreshLines(ctx, week)
		if err != nil {
			s.log.WithError(err).Error("Scheduled line refresh failed")
			return
		}
		s.log.WithFields(logrus.Fields{
			"week":  week,
			"lines": stored,
		}).Info("Scheduled line refresh completed")
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("interval_seconds", intervalSeconds).Info("Scheduled line polling job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.log.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for in-flight jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}

	s.isRunning = false
	s.log.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}
