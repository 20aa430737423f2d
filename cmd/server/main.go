// Package main provides the entry point for the long-running sync server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-prophet/internal/config"
	"github.com/yourusername/gridiron-prophet/internal/database"
	"github.com/yourusername/gridiron-prophet/internal/datasource"
	"github.com/yourusername/gridiron-prophet/internal/edge"
	"github.com/yourusername/gridiron-prophet/internal/form"
	"github.com/yourusername/gridiron-prophet/internal/health"
	applogger "github.com/yourusername/gridiron-prophet/internal/logger"
	"github.com/yourusername/gridiron-prophet/internal/metrics"
	"github.com/yourusername/gridiron-prophet/internal/ml"
	"github.com/yourusername/gridiron-prophet/internal/predictor"
	"github.com/yourusername/gridiron-prophet/internal/reconcile"
	"github.com/yourusername/gridiron-prophet/internal/repository"
	"github.com/yourusername/gridiron-prophet/internal/resolver"
	"github.com/yourusername/gridiron-prophet/internal/scheduler"
	"github.com/yourusername/gridiron-prophet/internal/season"
	"github.com/yourusername/gridiron-prophet/internal/service"
	"github.com/yourusername/gridiron-prophet/internal/severity"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yaml"
	}

	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := applogger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"season":      cfg.App.Season,
		"version":     Version,
	}).Info("Gridiron Prophet sync server starting")

	calendar := season.ForSeason(cfg.App.Season)
	if calendar == nil {
		appLog.WithField("season", cfg.App.Season).Fatal("No week calendar available for season")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Data sources
	feedCfg := datasource.DefaultHTTPClientConfig()
	feedCfg.RateLimit = cfg.InjuryFeed.RateLimit
	feedCfg.MaxRetries = cfg.InjuryFeed.MaxRetries
	feedClient := datasource.NewRateLimitedHTTPClient(feedCfg, appLog)

	oddsCfg := datasource.DefaultHTTPClientConfig()
	oddsCfg.RateLimit = cfg.OddsAPI.RateLimit
	oddsCfg.MaxRetries = cfg.OddsAPI.MaxRetries
	oddsClient := datasource.NewRateLimitedHTTPClient(oddsCfg, appLog)

	espn := datasource.NewESPNClient(feedClient, cfg.InjuryFeed.URL, true, appLog)
	odds := datasource.NewOddsAPIClient(oddsClient, cfg.OddsAPI, appLog)

	// Pipeline
	res := resolver.New(repos.Player, cfg.App.Season, appLog)
	engine := reconcile.NewEngine(res, repos.Injury, cfg.App.Season, appLog)
	injurySync := service.NewInjurySyncService(espn, engine, calendar, appLog)
	rosterSync := service.NewRosterSyncService(espn, repos.Player, repos.Membership, cfg.App.Season, appLog)

	classifier := ml.NewCachedClassifier(&cfg.Classifier, appLog)
	forms := form.NewAggregator(repos.Game, cfg.Prediction.RecentWindow, cfg.Prediction.LeagueAvgPoints, appLog)
	scorer := severity.NewScorer(repos.Injury, repos.Usage, severity.DefaultWeights(), appLog)
	marginPredictor := predictor.New(forms, scorer, classifier, &cfg.Prediction, appLog)
	edges := edge.NewClassifier(cfg.Prediction.MinEdge, appLog)
	analysis := service.NewAnalysisService(
		repos.Game, repos.MarketLine, repos.Recommendation,
		odds, marginPredictor, edges, cfg.App.Season, appLog,
	)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	// Health endpoint
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        fmt.Sprintf("%d", cfg.Health.Port),
		Logger:      appLog,
		DB:          db,
		Classifier:  classifier,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Recurring jobs
	sched := scheduler.NewScheduler(injurySync, rosterSync, analysis, appLog)
	if err := sched.ScheduleInjurySync(cfg.Sync.InjuryCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule injury sync")
	}
	if err := sched.ScheduleRosterSync(cfg.Sync.RosterCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule roster sync")
	}
	if err := sched.ScheduleLinePolling(cfg.Sync.LinePollIntervalSeconds); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule line polling")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	healthServer.SetReady(true)
	appLog.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Sync server ready")

	<-ctx.Done()
	appLog.Info("Shutdown signal received")

	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Scheduler stop failed")
	}

	appLog.Info("Sync server stopped")
}
