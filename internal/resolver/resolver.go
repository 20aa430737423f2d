// Package resolver maps raw player names from external feeds onto persisted
// player identities.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/models"
	"github.com/yourusername/gridiron-prophet/internal/repository"
)

// notFoundMarker caches a failed lookup so the same unknown name is not
// re-queried within one pass.
type notFoundMarker struct{}

// Resolver resolves feed names to players. Lookups are scoped to the team's
// current-season roster first and fall back to an unscoped (name, position)
// search only when the scoped lookup finds nothing. The fallback never picks
// between multiple candidates.
type Resolver struct {
	players repository.PlayerRepository
	season  int
	cache   *cache.Cache
	log     *logrus.Entry
}

// New creates a resolver for one season. The internal cache is per batch;
// call ResetCache between passes so a roster move observed mid-week is not
// masked by a stale entry.
func New(players repository.PlayerRepository, season int, baseLogger *logrus.Logger) *Resolver {
	return &Resolver{
		players: players,
		season:  season,
		cache:   cache.New(cache.NoExpiration, 10*time.Minute),
		log:     baseLogger.WithField("component", "resolver"),
	}
}

// Resolve returns the player a raw feed name refers to.
// Returns models.ErrPlayerNotFound when no unambiguous match exists.
func (r *Resolver) Resolve(ctx context.Context, rawName, team, position string) (*models.Player, error) {
	nameKey := NormalizeName(rawName)
	if nameKey == "" {
		return nil, models.ErrPlayerNotFound
	}

	cacheKey := nameKey + "|" + team
	if cached, found := r.cache.Get(cacheKey); found {
		if _, miss := cached.(notFoundMarker); miss {
			return nil, models.ErrPlayerNotFound
		}
		return cached.(*models.Player), nil
	}

	player, err := r.players.FindByNameKeyAndTeam(ctx, nameKey, team, r.season)
	if err == nil {
		r.cache.Set(cacheKey, player, cache.NoExpiration)
		return player, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("scoped player lookup failed: %w", err)
	}

	player, err = r.resolveUnscoped(ctx, nameKey, position)
	if err != nil {
		if errors.Is(err, models.ErrPlayerNotFound) {
			r.cache.Set(cacheKey, notFoundMarker{}, cache.NoExpiration)
		}
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"name":     rawName,
		"team":     team,
		"position": position,
	}).Debug("Resolved player through unscoped fallback")

	r.cache.Set(cacheKey, player, cache.NoExpiration)
	return player, nil
}

// resolveUnscoped is the fallback for players the roster join misses, such
// as a player traded after the last roster sync. An ambiguous name is a
// failure, never a guess.
func (r *Resolver) resolveUnscoped(ctx context.Context, nameKey, position string) (*models.Player, error) {
	candidates, err := r.players.FindByNameKeyAndPosition(ctx, nameKey, position)
	if err != nil {
		return nil, fmt.Errorf("fallback player lookup failed: %w", err)
	}

	switch len(candidates) {
	case 0:
		return nil, models.ErrPlayerNotFound
	case 1:
		return candidates[0], nil
	default:
		r.log.WithFields(logrus.Fields{
			"name_key":   nameKey,
			"position":   position,
			"candidates": len(candidates),
		}).Warn("Ambiguous player name, refusing to guess")
		return nil, models.ErrPlayerNotFound
	}
}

// ResetCache drops every cached lookup. Called at the start of each
// reconciliation pass.
func (r *Resolver) ResetCache() {
	r.cache.Flush()
}

// CacheSize returns the number of cached lookups, for pass diagnostics.
func (r *Resolver) CacheSize() int {
	return r.cache.ItemCount()
}
