// Package main provides the recommendation accuracy scoring command.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-prophet/internal/config"
	"github.com/yourusername/gridiron-prophet/internal/database"
	applogger "github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/repository"
	"github.com/yourusername/gridiron-prophet/internal/season"
	"github.com/yourusername/gridiron-prophet/internal/service"
)

var (
	configFile string
	week       int

	logger   *logrus.Logger
	cfg      *config.Config
	db       *database.DB
	accuracy *service.AccuracyService
	calendar *season.Calendar
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&week, "week", "w", 0, "Week to score (0 = current week)")
}

var rootCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Settle recommendations against final scores",
	Long:  `Settle each stored recommendation of a week against the final score and track units won at standard -110 pricing.`,
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
		return scoreWeek(cmd.Context())
	},
}

func main() {
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

	calendar = season.ForSeason(cfg.App.Season)
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

	accuracy = service.NewAccuracyService(repos.Game, repos.Recommendation, cfg.App.Season, logger)
	return nil
}

func scoreWeek(ctx context.Context) error {
	targetWeek := week
	if targetWeek == 0 {
		targetWeek = calendar.CurrentWeek(time.Now())
	}

	stats, err := accuracy.ScoreWeek(ctx, targetWeek)
	if err != nil {
		return fmt.Errorf("scoring week %d failed: %w", targetWeek, err)
	}

	fmt.Printf("Week %d settled: %d scored (%d wins, %d losses, %d pushes, %d passes), %d pending\n",
		targetWeek, stats.Scored, stats.Wins, stats.Losses, stats.Pushes, stats.Passes, stats.Pending)
	fmt.Printf("Units: %s\n", stats.Units.StringFixed(2))
	return nil
}
