package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/config"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/models"
)

const oddsSportKey = "americanfootball_nfl"

// OddsAPIClient implements OddsSource against the-odds-api v4
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	region     string
	bookmakers []string
	enabled    bool
	log        *logrus.Entry
}

// oddsEvent is one upcoming game with per-book quotes
type oddsEvent struct {
	ID           string          `json:"id"`
	CommenceTime time.Time       `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string   `json:"name"`
	Point *float64 `json:"point"`
	Price *float64 `json:"price"`
}

// NewOddsAPIClient creates a new odds API client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, cfg config.OddsAPIConfig, baseLogger *logrus.Logger) *OddsAPIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.the-odds-api.com/v4"
	}
	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		region:     cfg.Region,
		bookmakers: cfg.Bookmakers,
		enabled:    cfg.APIKey != "",
		log:        baseLogger.WithField("component", "odds_api"),
	}
}

// FetchLines retrieves current spreads and totals for upcoming games. Each
// bookmaker quote becomes one MarketLine row; spreads are stored from the
// home team's perspective.
func (c *OddsAPIClient) FetchLines(ctx context.Context, season, week int) ([]models.MarketLine, error) {
	if !c.enabled {
		return nil, NewDataSourceError("odds_api", ErrCodeDisabled, "no API key configured", ErrSourceDisabled)
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.region)
	params.Set("markets", "spreads,totals")
	params.Set("oddsFormat", "american")
	if len(c.bookmakers) > 0 {
		params.Set("bookmakers", strings.Join(c.bookmakers, ","))
	}

	reqURL := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, oddsSportKey, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, NewDataSourceError("odds_api", ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		metrics.RecordOddsFetch("error")
		return nil, NewDataSourceError("odds_api", ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.RecordOddsFetch("auth_failed")
		return nil, NewDataSourceError("odds_api", ErrCodeAuthFailed, "invalid API key", ErrAuthFailed)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.RecordOddsFetch("rate_limited")
		return nil, NewDataSourceError("odds_api", ErrCodeRateLimitExceeded, "request quota exhausted", ErrRateLimitExceeded)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordOddsFetch("error")
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("odds_api", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var events []oddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		metrics.RecordOddsFetch("error")
		return nil, NewDataSourceError("odds_api", ErrCodeInvalidData, "failed to parse response", err)
	}

	fetchedAt := time.Now().UTC()
	var lines []models.MarketLine
	for i := range events {
		converted, err := c.convertEvent(&events[i], season, week, fetchedAt)
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"home_team": events[i].HomeTeam,
				"away_team": events[i].AwayTeam,
			}).Warn("Skipping event")
			continue
		}
		lines = append(lines, converted...)
	}

	metrics.RecordOddsFetch("success")
	c.log.WithFields(logrus.Fields{
		"events": len(events),
		"lines":  len(lines),
	}).Info("Fetched market lines")

	return lines, nil
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return "odds_api"
}

// IsEnabled returns whether this data source is enabled
func (c *OddsAPIClient) IsEnabled() bool {
	return c.enabled
}

// convertEvent flattens one event into per-bookmaker lines
func (c *OddsAPIClient) convertEvent(event *oddsEvent, season, week int, fetchedAt time.Time) ([]models.MarketLine, error) {
	home := TeamAbbreviation(event.HomeTeam)
	away := TeamAbbreviation(event.AwayTeam)
	if !IsKnownTeam(home) || !IsKnownTeam(away) {
		return nil, fmt.Errorf("unrecognized team names %q vs %q", event.AwayTeam, event.HomeTeam)
	}

	lines := make([]models.MarketLine, 0, len(event.Bookmakers))
	for _, book := range event.Bookmakers {
		line := models.MarketLine{
			ID:        uuid.New(),
			Season:    season,
			Week:      week,
			HomeTeam:  home,
			AwayTeam:  away,
			Source:    book.Key,
			FetchedAt: fetchedAt,
		}

		for _, market := range book.Markets {
			switch market.Key {
			case "spreads":
				line.Spread = homeSpread(market.Outcomes, event.HomeTeam)
			case "totals":
				line.Total = overTotal(market.Outcomes)
			}
		}

		if line.Spread == nil && line.Total == nil {
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// homeSpread finds the home team's point spread among the two outcomes
func homeSpread(outcomes []oddsOutcome, homeName string) *decimal.Decimal {
	for _, outcome := range outcomes {
		if outcome.Point == nil {
			continue
		}
		if strings.EqualFold(outcome.Name, homeName) {
			spread := decimal.NewFromFloat(*outcome.Point)
			return &spread
		}
	}
	return nil
}

// overTotal reads the game total from the Over side
func overTotal(outcomes []oddsOutcome) *decimal.Decimal {
	for _, outcome := range outcomes {
		if outcome.Point == nil {
			continue
		}
		if strings.EqualFold(outcome.Name, "Over") {
			total := decimal.NewFromFloat(*outcome.Point)
			return &total
		}
	}
	return nil
}
