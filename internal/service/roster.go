package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/datasource"
	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
	"github.com/yourusername/gridiron-prophet/internal/resolver"
)

// RosterSyncStats summarizes one roster sync run
type RosterSyncStats struct {
	Teams         int
	NewPlayers    int
	Trades        int
	StatusChanges int
	Unchanged     int
	Errors        int
}

// RosterSyncService keeps team-season memberships aligned with the roster
// feed. Memberships are overwritten in place so a trade moves the player
// without leaving a second row behind.
type RosterSyncService struct {
	source      datasource.RosterSource
	players     repository.PlayerRepository
	memberships repository.MembershipRepository
	season      int
	log         *logrus.Entry
}

// NewRosterSyncService creates a new roster sync service
func NewRosterSyncService(source datasource.RosterSource, players repository.PlayerRepository, memberships repository.MembershipRepository, seasonYear int, baseLogger *logrus.Logger) *RosterSyncService {
	return &RosterSyncService{
		source:      source,
		players:     players,
		memberships: memberships,
		season:      seasonYear,
		log:         baseLogger.WithField("component", "roster_sync"),
	}
}

// SyncAll syncs every franchise roster. Per-team failures are counted and
// logged; one unreachable roster page does not abort the rest.
func (s *RosterSyncService) SyncAll(ctx context.Context) (RosterSyncStats, error) {
	var total RosterSyncStats

	for _, team := range datasource.AllTeams() {
		stats, err := s.SyncTeam(ctx, team)
		if err != nil {
			total.Errors++
			s.log.WithError(err).WithField("team", team).Error("Roster sync failed for team")
			continue
		}
		total.Teams++
		total.NewPlayers += stats.NewPlayers
		total.Trades += stats.Trades
		total.StatusChanges += stats.StatusChanges
		total.Unchanged += stats.Unchanged
		total.Errors += stats.Errors
	}

	s.log.WithFields(logrus.Fields{
		"teams":          total.Teams,
		"new_players":    total.NewPlayers,
		"trades":         total.Trades,
		"status_changes": total.StatusChanges,
		"errors":         total.Errors,
	}).Info("Roster sync complete")

	return total, nil
}

// SyncTeam syncs one franchise roster against persisted memberships
func (s *RosterSyncService) SyncTeam(ctx context.Context, team string) (RosterSyncStats, error) {
	var stats RosterSyncStats

	rows, err := s.source.FetchRoster(ctx, team)
	if err != nil {
		return stats, err
	}
	stats.Teams = 1

	for _, row := range rows {
		if err := s.applyRow(ctx, team, row, &stats); err != nil {
			stats.Errors++
			s.log.WithError(err).WithFields(logrus.Fields{
				"team":   team,
				"player": row.RawName,
			}).Warn("Skipping roster row")
		}
	}

	return stats, nil
}

func (s *RosterSyncService) applyRow(ctx context.Context, team string, row datasource.RosterRow, stats *RosterSyncStats) error {
	nameKey := resolver.NormalizeName(row.RawName)

	player, err := s.players.GetOrCreate(ctx, row.RawName, nameKey, row.Position)
	if err != nil {
		return err
	}

	status := models.NormalizeRosterStatus(row.Status)

	current, err := s.memberships.GetCurrent(ctx, player.ID, s.season)
	switch {
	case errors.Is(err, models.ErrNotFound):
		stats.NewPlayers++
	case err != nil:
		return err
	case current.Team != team:
		stats.Trades++
		s.log.WithFields(logrus.Fields{
			"player": row.RawName,
			"from":   current.Team,
			"to":     team,
		}).Info("Player changed teams")
	case current.RosterStatus != status:
		stats.StatusChanges++
	default:
		stats.Unchanged++
		return nil
	}

	membership := &models.TeamSeasonMembership{
		ID:           uuid.New(),
		PlayerID:     player.ID,
		Season:       s.season,
		Team:         team,
		Position:     row.Position,
		RosterStatus: status,
		UpdatedAt:    time.Now().UTC(),
	}
	if current != nil {
		membership.ID = current.ID
		membership.YearsExp = current.YearsExp
	}
	if jersey, err := strconv.Atoi(row.Jersey); err == nil {
		membership.JerseyNumber = &jersey
	}

	return s.memberships.Upsert(ctx, membership)
}
