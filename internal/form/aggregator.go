// Package form computes rolling and multi-season team performance aggregates.
package form

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/repository"
)

// Trend tags for multi-season form
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendNeutral   = "neutral"
)

// Defaults applied when a team has no usable history. Downstream arithmetic
// degrades gracefully instead of dividing by zero.
const (
	NeutralWinRate = 0.5
)

// maxSeasonGames bounds a season-to-date query; a regular season has 18 weeks
// with one bye.
const maxSeasonGames = 18

// RecentForm is a team's trailing-window performance strictly before a week.
type RecentForm struct {
	Team              string  `json:"team"`
	Games             int     `json:"games"`
	WinRate           float64 `json:"win_rate"`
	AvgPointsScored   float64 `json:"avg_points_scored"`
	AvgPointsAllowed  float64 `json:"avg_points_allowed"`
	PointDifferential float64 `json:"point_differential"`
}

// SeasonForm is a team's season-to-date record and scoring averages before a
// given week.
type SeasonForm struct {
	Team             string  `json:"team"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	WinRate          float64 `json:"win_rate"`
	AvgPointsScored  float64 `json:"avg_points_scored"`
	AvgPointsAllowed float64 `json:"avg_points_allowed"`
}

// HistoricalForm is a team's multi-season win-rate trend.
type HistoricalForm struct {
	Team          string  `json:"team"`
	Seasons       int     `json:"seasons"`
	AvgWinRate    float64 `json:"avg_win_rate"`
	LatestWinRate float64 `json:"latest_win_rate"`
	Trend         string  `json:"trend"`
}

// Aggregator computes team form from persisted game results.
type Aggregator struct {
	games     repository.GameRepository
	window    int
	leagueAvg float64
	log       *logrus.Entry
}

// NewAggregator creates a form aggregator. window is the trailing game count
// for recent form; leagueAvg is the scoring average substituted when a team
// has no completed games.
func NewAggregator(games repository.GameRepository, window int, leagueAvg float64, baseLogger *logrus.Logger) *Aggregator {
	return &Aggregator{
		games:     games,
		window:    window,
		leagueAvg: leagueAvg,
		log:       baseLogger.WithField("component", "form"),
	}
}

// Recent computes the trailing-window form for a team before the given week.
// Games at or after the week never count; a prediction for week N may only
// see results through week N-1.
func (a *Aggregator) Recent(ctx context.Context, team string, season, week int) (*RecentForm, error) {
	samples, err := a.games.RecentSamples(ctx, team, season, week, a.window)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent samples for %s: %w", team, err)
	}

	if len(samples) == 0 {
		a.log.WithFields(logrus.Fields{
			"team":   team,
			"season": season,
			"week":   week,
		}).Debug("No completed games, using neutral form")
		return &RecentForm{
			Team:             team,
			WinRate:          NeutralWinRate,
			AvgPointsScored:  a.leagueAvg,
			AvgPointsAllowed: a.leagueAvg,
		}, nil
	}

	var wins, scored, allowed int
	for _, s := range samples {
		if s.Won {
			wins++
		}
		scored += s.PointsScored
		allowed += s.PointsAllowed
	}

	n := float64(len(samples))
	form := &RecentForm{
		Team:             team,
		Games:            len(samples),
		WinRate:          float64(wins) / n,
		AvgPointsScored:  float64(scored) / n,
		AvgPointsAllowed: float64(allowed) / n,
	}
	form.PointDifferential = form.AvgPointsScored - form.AvgPointsAllowed

	return form, nil
}

// SeasonToDate computes a team's full season-to-date record before the given
// week. Ties count as losses for record purposes; they are rare enough not to
// warrant a third bucket.
func (a *Aggregator) SeasonToDate(ctx context.Context, team string, season, week int) (*SeasonForm, error) {
	samples, err := a.games.RecentSamples(ctx, team, season, week, maxSeasonGames)
	if err != nil {
		return nil, fmt.Errorf("failed to load season samples for %s: %w", team, err)
	}

	if len(samples) == 0 {
		return &SeasonForm{
			Team:             team,
			WinRate:          NeutralWinRate,
			AvgPointsScored:  a.leagueAvg,
			AvgPointsAllowed: a.leagueAvg,
		}, nil
	}

	sf := &SeasonForm{Team: team}
	var scored, allowed int
	for _, s := range samples {
		if s.Won {
			sf.Wins++
		} else {
			sf.Losses++
		}
		scored += s.PointsScored
		allowed += s.PointsAllowed
	}

	n := float64(len(samples))
	sf.WinRate = float64(sf.Wins) / n
	sf.AvgPointsScored = float64(scored) / n
	sf.AvgPointsAllowed = float64(allowed) / n

	return sf, nil
}

// Historical averages per-season win rates over the prior completed seasons
// and tags the direction of travel. Seasons with no recorded games are
// skipped, not counted as zeros.
func (a *Aggregator) Historical(ctx context.Context, team string, season, priorSeasons int) (*HistoricalForm, error) {
	form := &HistoricalForm{
		Team:          team,
		AvgWinRate:    NeutralWinRate,
		LatestWinRate: NeutralWinRate,
		Trend:         TrendNeutral,
	}

	var rates []float64
	var latest float64
	haveLatest := false

	for s := season - 1; s >= season-priorSeasons; s-- {
		samples, err := a.games.SeasonSamples(ctx, team, s)
		if err != nil {
			return nil, fmt.Errorf("failed to load season %d samples for %s: %w", s, team, err)
		}
		if len(samples) == 0 {
			continue
		}

		wins := 0
		for _, sample := range samples {
			if sample.Won {
				wins++
			}
		}
		rate := float64(wins) / float64(len(samples))
		rates = append(rates, rate)

		if !haveLatest {
			latest = rate
			haveLatest = true
		}
	}

	if len(rates) == 0 {
		return form, nil
	}

	sum := 0.0
	for _, r := range rates {
		sum += r
	}

	form.Seasons = len(rates)
	form.AvgWinRate = sum / float64(len(rates))
	form.LatestWinRate = latest

	if latest > form.AvgWinRate {
		form.Trend = TrendImproving
	} else {
		form.Trend = TrendDeclining
	}

	return form, nil
}
