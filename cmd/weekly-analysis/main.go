// Package main provides the weekly betting analysis command.
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
	"github.com/yourusername/gridiron-prophet/internal/edge"
	"github.com/yourusername/gridiron-prophet/internal/form"
	applogger "github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/ml"
	"github.com/yourusername/gridiron-prophet/internal/predictor"
	"github.com/yourusername/gridiron-prophet/internal/reconcile"
	"github.com/yourusername/gridiron-prophet/internal/report"
	"github.com/yourusername/gridiron-prophet/internal/repository"
	"github.com/yourusername/gridiron-prophet/internal/resolver"
	"github.com/yourusername/gridiron-prophet/internal/season"
	"github.com/yourusername/gridiron-prophet/internal/service"
	"github.com/yourusername/gridiron-prophet/internal/severity"
)

var (
	configFile   string
	week         int
	refreshLines bool
	skipInjuries bool
	reportDir    string
	showAll      bool

	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	injurySync *service.InjurySyncService
	analysis   *service.AnalysisService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&week, "week", "w", 0, "Week to analyze (0 = current week)")
	rootCmd.Flags().BoolVar(&refreshLines, "refresh-lines", true, "Fetch fresh bookmaker lines before analyzing")
	rootCmd.Flags().BoolVar(&skipInjuries, "skip-injuries", false, "Skip the injury sync pass before analyzing")
	rootCmd.Flags().StringVar(&reportDir, "report-dir", "reports", "Directory for the weekly report file")
	rootCmd.Flags().BoolVar(&showAll, "all", false, "Print the full per-game prediction breakdown")
}

var rootCmd = &cobra.Command{
	Use:   "weekly-analysis",
	Short: "Predict the week's games and flag betting edges",
	Long: `Run the full weekly pipeline: sync injuries, refresh bookmaker lines,
predict every scheduled game and compare predictions against the market.`,
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
		return runAnalysis(cmd.Context())
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

	feedCfg := datasource.DefaultHTTPClientConfig()
	feedCfg.RateLimit = cfg.InjuryFeed.RateLimit
	feedCfg.MaxRetries = cfg.InjuryFeed.MaxRetries
	feedClient := datasource.NewRateLimitedHTTPClient(feedCfg, logger)

	oddsCfg := datasource.DefaultHTTPClientConfig()
	oddsCfg.RateLimit = cfg.OddsAPI.RateLimit
	oddsCfg.MaxRetries = cfg.OddsAPI.MaxRetries
	oddsClient := datasource.NewRateLimitedHTTPClient(oddsCfg, logger)

	espn := datasource.NewESPNClient(feedClient, cfg.InjuryFeed.URL, true, logger)
	odds := datasource.NewOddsAPIClient(oddsClient, cfg.OddsAPI, logger)

	res := resolver.New(repos.Player, cfg.App.Season, logger)
	engine := reconcile.NewEngine(res, repos.Injury, cfg.App.Season, logger)
	injurySync = service.NewInjurySyncService(espn, engine, calendar, logger)

	classifier := ml.NewCachedClassifier(&cfg.Classifier, logger)
	forms := form.NewAggregator(repos.Game, cfg.Prediction.RecentWindow, cfg.Prediction.LeagueAvgPoints, logger)
	scorer := severity.NewScorer(repos.Injury, repos.Usage, severity.DefaultWeights(), logger)
	marginPredictor := predictor.New(forms, scorer, classifier, &cfg.Prediction, logger)
	edges := edge.NewClassifier(cfg.Prediction.MinEdge, logger)

	analysis = service.NewAnalysisService(
		repos.Game, repos.MarketLine, repos.Recommendation,
		odds, marginPredictor, edges, cfg.App.Season, logger,
	)

	return nil
}

func runAnalysis(ctx context.Context) error {
	targetWeek := week
	if targetWeek == 0 {
		targetWeek = injurySync.CurrentWeek()
	}

	// Sync injuries first so predictions see the freshest state. A failed
	// sync does not block analysis; predictions are flagged stale instead.
	stale := false
	if !skipInjuries {
		if _, err := injurySync.RunPass(ctx); err != nil {
			logger.WithError(err).Warn("Injury sync failed, predictions will use prior state")
			stale = true
		}
	}

	if refreshLines {
		stored, err := analysis.RefreshLines(ctx, targetWeek)
		if err != nil {
			logger.WithError(err).Warn("Line refresh failed, using stored quotes")
		} else {
			logger.WithField("lines", stored).Info("Market lines refreshed")
		}
	}

	result, err := analysis.AnalyzeWeek(ctx, targetWeek, stale)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	writer := report.NewWriter(reportDir)
	if err := writer.Render(os.Stdout, result); err != nil {
		return err
	}
	if showAll {
		if err := writer.RenderPredictions(os.Stdout, result); err != nil {
			return err
		}
	}

	path, err := writer.SaveWeekly(result)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Printf("\nReport saved to: %s\n", path)

	return nil
}
