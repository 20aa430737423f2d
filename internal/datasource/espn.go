package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/models"
)

// ESPNClient implements InjurySource and RosterSource against the ESPN
// site API
type ESPNClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	enabled    bool
	log        *logrus.Entry
}

// espnInjuryReport is the top-level injury feed payload
type espnInjuryReport struct {
	Teams []espnTeamInjuries `json:"injuries"`
}

// espnTeamInjuries groups one team's injury entries
type espnTeamInjuries struct {
	DisplayName string            `json:"displayName"`
	Injuries    []espnInjuryEntry `json:"injuries"`
}

// espnInjuryEntry is a single player injury row
type espnInjuryEntry struct {
	Status  string             `json:"status"`
	Date    string             `json:"date"`
	Athlete espnAthlete        `json:"athlete"`
	Details *espnInjuryDetails `json:"details"`
	Comment string             `json:"longComment"`
}

type espnAthlete struct {
	DisplayName string       `json:"displayName"`
	Jersey      string       `json:"jersey"`
	Position    espnPosition `json:"position"`
	Status      *espnStatus  `json:"status"`
}

type espnPosition struct {
	Abbreviation string `json:"abbreviation"`
}

type espnStatus struct {
	Name string `json:"name"`
}

type espnInjuryDetails struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// espnRosterResponse is the per-team roster payload
type espnRosterResponse struct {
	Athletes []espnRosterGroup `json:"athletes"`
}

// espnRosterGroup is a positional grouping (offense, defense, specialTeam)
type espnRosterGroup struct {
	Position string        `json:"position"`
	Items    []espnAthlete `json:"items"`
}

// espnPathOverrides maps internal abbreviations onto ESPN URL slugs where
// they differ
var espnPathOverrides = map[string]string{
	"WAS": "wsh",
	"LA":  "lar",
}

// NewESPNClient creates a new ESPN site API client
func NewESPNClient(httpClient *RateLimitedHTTPClient, baseURL string, enabled bool, baseLogger *logrus.Logger) *ESPNClient {
	if baseURL == "" {
		baseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	}
	return &ESPNClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		enabled:    enabled,
		log:        baseLogger.WithField("component", "espn"),
	}
}

// FetchInjuries retrieves the league-wide injury snapshot
func (c *ESPNClient) FetchInjuries(ctx context.Context) ([]models.InjurySnapshotRow, error) {
	if !c.enabled {
		return nil, NewDataSourceError("espn", ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	url := fmt.Sprintf("%s/injuries", c.baseURL)

	report, err := fetchJSON[espnInjuryReport](ctx, c, url, "failed to fetch injury report")
	if err != nil {
		return nil, err
	}

	var rows []models.InjurySnapshotRow
	for _, team := range report.Teams {
		abbr := TeamAbbreviation(team.DisplayName)
		if !IsKnownTeam(abbr) {
			c.log.WithField("team", team.DisplayName).Warn("Skipping unrecognized team in injury feed")
			continue
		}

		for _, entry := range team.Injuries {
			row, ok := c.convertInjury(abbr, &entry)
			if !ok {
				continue
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// FetchRoster retrieves the current roster for one team
func (c *ESPNClient) FetchRoster(ctx context.Context, team string) ([]RosterRow, error) {
	if !c.enabled {
		return nil, NewDataSourceError("espn", ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	slug, ok := espnPathOverrides[team]
	if !ok {
		slug = strings.ToLower(team)
	}
	url := fmt.Sprintf("%s/teams/%s/roster", c.baseURL, slug)

	roster, err := fetchJSON[espnRosterResponse](ctx, c, url, "failed to fetch roster")
	if err != nil {
		return nil, err
	}

	var rows []RosterRow
	for _, group := range roster.Athletes {
		for _, athlete := range group.Items {
			if athlete.DisplayName == "" {
				continue
			}
			row := RosterRow{
				RawName:  athlete.DisplayName,
				Team:     team,
				Position: athlete.Position.Abbreviation,
				Jersey:   athlete.Jersey,
			}
			if athlete.Status != nil {
				row.Status = athlete.Status.Name
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// Name returns the data source name
func (c *ESPNClient) Name() string {
	return "espn"
}

// IsEnabled returns whether this data source is enabled
func (c *ESPNClient) IsEnabled() bool {
	return c.enabled
}

// convertInjury maps one feed entry onto a snapshot row. Entries with no
// player name or no actionable status are dropped.
func (c *ESPNClient) convertInjury(team string, entry *espnInjuryEntry) (models.InjurySnapshotRow, bool) {
	name := strings.TrimSpace(entry.Athlete.DisplayName)
	if name == "" {
		return models.InjurySnapshotRow{}, false
	}

	status := models.NormalizeInjuryStatus(entry.Status)
	if status == "" {
		return models.InjurySnapshotRow{}, false
	}

	row := models.InjurySnapshotRow{
		RawName:  name,
		Team:     team,
		Position: strings.ToUpper(entry.Athlete.Position.Abbreviation),
		Status:   status,
		Notes:    entry.Comment,
	}

	if entry.Details != nil {
		row.BodyPart = entry.Details.Type
		if row.BodyPart == "" {
			row.BodyPart = entry.Details.Detail
		}
	}

	if reported, err := time.Parse(time.RFC3339, entry.Date); err == nil {
		row.DateReported = reported
	} else {
		row.DateReported = time.Now().UTC()
	}

	return row, true
}

// fetchJSON executes a GET and decodes the body, translating transport and
// status failures into DataSourceErrors
func fetchJSON[T any](ctx context.Context, c *ESPNClient, url, failMsg string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("espn", ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("espn", ErrCodeNetworkError, failMsg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError("espn", ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError("espn", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var payload T
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError("espn", ErrCodeInvalidData, "failed to parse response", err)
	}

	return &payload, nil
}
