package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketLine is one bookmaker's quote for a matchup. Spread is quoted from
// the home side (negative means home favored). Multiple sources per matchup
// are reduced to a single consensus value by AggregateLines.
type MarketLine struct {
	ID        uuid.UUID        `db:"id" json:"id" validate:"required,uuid4"`
	Season    int              `db:"season" json:"season" validate:"required"`
	Week      int              `db:"week" json:"week" validate:"required,gte=1,lte=18"`
	HomeTeam  string           `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string           `db:"away_team" json:"away_team" validate:"required"`
	Source    string           `db:"source" json:"source" validate:"required"`
	Spread    *decimal.Decimal `db:"spread" json:"spread"`
	Total     *decimal.Decimal `db:"total" json:"total"`
	FetchedAt time.Time        `db:"fetched_at" json:"fetched_at"`
}

// ConsensusLine is the reduced market view the edge classifier consumes
type ConsensusLine struct {
	HomeTeam string
	AwayTeam string
	Spread   *decimal.Decimal
	Total    *decimal.Decimal
	Sources  int
}

// HasSpread reports whether a usable spread exists
func (c *ConsensusLine) HasSpread() bool {
	return c != nil && c.Spread != nil
}

// AggregateLines reduces per-book quotes to a mean consensus. Books with no
// spread contribute nothing; a matchup where no book quoted a spread yields
// a consensus with Spread nil, which excludes it from edge classification.
func AggregateLines(lines []MarketLine) *ConsensusLine {
	if len(lines) == 0 {
		return nil
	}

	consensus := &ConsensusLine{
		HomeTeam: lines[0].HomeTeam,
		AwayTeam: lines[0].AwayTeam,
	}

	var spreadSum, totalSum decimal.Decimal
	var spreadN, totalN int64
	for _, line := range lines {
		if line.Spread != nil {
			spreadSum = spreadSum.Add(*line.Spread)
			spreadN++
		}
		if line.Total != nil {
			totalSum = totalSum.Add(*line.Total)
			totalN++
		}
	}

	if spreadN > 0 {
		mean := spreadSum.Div(decimal.NewFromInt(spreadN))
		consensus.Spread = &mean
		consensus.Sources = int(spreadN)
	}
	if totalN > 0 {
		mean := totalSum.Div(decimal.NewFromInt(totalN))
		consensus.Total = &mean
	}

	return consensus
}
