package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/gridiron-prophet/internal/models"
)

// InjurySource fetches the league-wide injury report snapshot.
type InjurySource interface {
	// FetchInjuries retrieves the current injury snapshot for every team.
	// An error here aborts the reconciliation pass; there is no partial
	// snapshot.
	FetchInjuries(ctx context.Context) ([]models.InjurySnapshotRow, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// OddsSource fetches bookmaker lines for upcoming games.
type OddsSource interface {
	// FetchLines retrieves current spreads and totals per bookmaker,
	// normalized to internal team abbreviations.
	FetchLines(ctx context.Context, season, week int) ([]models.MarketLine, error)

	Name() string
	IsEnabled() bool
}

// RosterRow is one player entry from a roster feed before resolution.
type RosterRow struct {
	RawName  string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Jersey   string `json:"jersey"`
}

// RosterSource fetches team roster listings.
type RosterSource interface {
	// FetchRoster retrieves the current roster for one team.
	FetchRoster(ctx context.Context, team string) ([]RosterRow, error)

	Name() string
	IsEnabled() bool
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeAuthFailed        = "authentication_failed"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeDisabled          = "source_disabled"
)

// Sentinel errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrInvalidData       = errors.New("invalid data format")
	ErrSourceDisabled    = errors.New("data source disabled")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
