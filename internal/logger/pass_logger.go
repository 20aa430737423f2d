// Package logger provides audit logging for reconciliation passes.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PassLogger provides a dedicated audit trail for reconciliation passes.
// Every write the engine issues against persisted state is recorded here so
// a pass can be reconstructed after the fact.
type PassLogger struct {
	*logrus.Entry
}

// NewPassLogger creates a new reconciliation pass logger.
func NewPassLogger(baseLogger *logrus.Logger) *PassLogger {
	return &PassLogger{
		Entry: baseLogger.WithField("component", "reconcile"),
	}
}

// LogTransition logs a single record transition applied during a pass.
func (pl *PassLogger) LogTransition(transition, playerName, team string, season, week int, oldStatus, newStatus string) {
	pl.WithFields(logrus.Fields{
		"transition": transition,
		"player":     playerName,
		"team":       team,
		"season":     season,
		"week":       week,
		"old_status": oldStatus,
		"new_status": newStatus,
	}).Info("Injury record transition")
}

// LogResolutionFailure logs a snapshot row that could not be mapped to a player.
func (pl *PassLogger) LogResolutionFailure(rawName, team string, week int) {
	pl.WithFields(logrus.Fields{
		"raw_name": rawName,
		"team":     team,
		"week":     week,
	}).Warn("Could not resolve player from snapshot")
}

// LogPassSummary logs the aggregate outcome of a reconciliation pass.
func (pl *PassLogger) LogPassSummary(season, week int, created, updated, unchanged, resolved, notFound, errors int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"season":    season,
		"week":      week,
		"new":       created,
		"updated":   updated,
		"unchanged": unchanged,
		"resolved":  resolved,
		"not_found": notFound,
		"errors":    errors,
		"duration":  duration.String(),
	}).Info("Reconciliation pass complete")
}

// LogPassAborted logs a pass that performed no update because the snapshot
// fetch failed. Prior persisted state is left untouched.
func (pl *PassLogger) LogPassAborted(season, week int, reason error) {
	pl.WithFields(logrus.Fields{
		"season": season,
		"week":   week,
		"reason": reason.Error(),
	}).Error("Reconciliation pass aborted, no update performed")
}
