package models

import (
	"time"

	"github.com/google/uuid"
)

// Game statuses
const (
	GameScheduled = "scheduled"
	GameFinal     = "final"
	GameCancelled = "cancelled"
)

// Game represents one scheduled or completed contest. A completed game is the
// substrate for one TeamPerformanceSample per side.
type Game struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Season    int       `db:"season" json:"season" validate:"required,gte=2000"`
	Week      int       `db:"week" json:"week" validate:"required,gte=1,lte=18"`
	HomeTeam  string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string    `db:"away_team" json:"away_team" validate:"required"`
	HomeScore *int      `db:"home_score" json:"home_score"`
	AwayScore *int      `db:"away_score" json:"away_score"`
	Status    string    `db:"status" json:"status" validate:"oneof=scheduled final cancelled"`
	KickoffAt time.Time `db:"kickoff_at" json:"kickoff_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsFinal reports whether the game has a usable result
func (g *Game) IsFinal() bool {
	return g.Status == GameFinal && g.HomeScore != nil && g.AwayScore != nil
}

// Margin returns home score minus away score for a final game
func (g *Game) Margin() (int, bool) {
	if !g.IsFinal() {
		return 0, false
	}
	return *g.HomeScore - *g.AwayScore, true
}

// TeamPerformanceSample is one team's view of a completed game
type TeamPerformanceSample struct {
	Team          string    `db:"team" json:"team"`
	Season        int       `db:"season" json:"season"`
	Week          int       `db:"week" json:"week"`
	PointsScored  int       `db:"points_scored" json:"points_scored"`
	PointsAllowed int       `db:"points_allowed" json:"points_allowed"`
	Home          bool      `db:"home" json:"home"`
	Won           bool      `db:"won" json:"won"`
	PlayedAt      time.Time `db:"played_at" json:"played_at"`
}

// SampleFor projects a final game onto one side's performance sample
func (g *Game) SampleFor(team string) (TeamPerformanceSample, bool) {
	if !g.IsFinal() {
		return TeamPerformanceSample{}, false
	}

	sample := TeamPerformanceSample{
		Team:     team,
		Season:   g.Season,
		Week:     g.Week,
		PlayedAt: g.KickoffAt,
	}

	switch team {
	case g.HomeTeam:
		sample.Home = true
		sample.PointsScored = *g.HomeScore
		sample.PointsAllowed = *g.AwayScore
	case g.AwayTeam:
		sample.PointsScored = *g.AwayScore
		sample.PointsAllowed = *g.HomeScore
	default:
		return TeamPerformanceSample{}, false
	}

	sample.Won = sample.PointsScored > sample.PointsAllowed
	return sample, true
}
