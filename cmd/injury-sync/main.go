// Package main provides the injury synchronization command.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-prophet/internal/config"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/datasource"
	applogger "github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/reconcile"
	"github.com/yourusername/gridiron-prophet/internal/repository"
	"github.com/yourusername/gridiron-prophet/internal/resolver"
	"github.com/yourusername/gridiron-prophet/internal/season"
	"github.com/yourusername/gridiron-prophet/internal/service"
)

var (
	configFile string
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	injurySync *service.InjurySyncService
	rosterSync *service.RosterSyncService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "injury-sync",
	Short: "Reconcile the injury report against persisted state",
	Long:  `Fetch the current league-wide injury snapshot and reconcile it against the database. A failed fetch performs no update.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd.Context())
	},
}

var rosterCmd = &cobra.Command{
	Use:   "rosters",
	Short: "Sync all team rosters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRosterSync(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(rosterCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	logger = applogger.NewLogger(cfg.App.LogLevel)

	calendar := season.ForSeason(cfg.App.Season)
	if calendar == nil {
		return fmt.Errorf("no week calendar available for season %d", cfg.App.Season)
	}

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.RateLimit = cfg.InjuryFeed.RateLimit
	httpCfg.MaxRetries = cfg.InjuryFeed.MaxRetries
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, logger)

	espn := datasource.NewESPNClient(httpClient, cfg.InjuryFeed.URL, true, logger)
	res := resolver.New(repos.Player, cfg.App.Season, logger)
	engine := reconcile.NewEngine(res, repos.Injury, cfg.App.Season, logger)

	injurySync = service.NewInjurySyncService(espn, engine, calendar, logger)
	rosterSync = service.NewRosterSyncService(espn, repos.Player, repos.Membership, cfg.App.Season, logger)

	return nil
}

func runPass(ctx context.Context) error {
	stats, err := injurySync.RunPass(ctx)
	if err != nil {
		return fmt.Errorf("injury sync pass failed: %w", err)
	}

	fmt.Printf("Reconciliation complete: %d new, %d updated, %d unchanged, %d resolved, %d not found, %d errors\n",
		stats.New, stats.Updated, stats.Unchanged, stats.Resolved, stats.NotFound, stats.Errors)
	return nil
}

func runRosterSync(ctx context.Context) error {
	stats, err := rosterSync.SyncAll(ctx)
	if err != nil {
		return fmt.Errorf("roster sync failed: %w", err)
	}

	fmt.Printf("Roster sync complete: %d teams, %d new players, %d trades, %d status changes, %d errors\n",
		stats.Teams, stats.NewPlayers, stats.Trades, stats.StatusChanges, stats.Errors)
	return nil
}
