package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/config"
	"github.com/felano-technologies/poultrycare/internal/repository/mongodb"
	"github.com/felano-technologies/poultrycare/internal/scheduler"
	"github.com/felano-technologies/poultrycare/internal/server/handlers"
	"github.com/felano-technologies/poultrycare/internal/server/router"
	assistantsvc "github.com/felano-technologies/poultrycare/internal/service/assistant"
	flocksvc "github.com/felano-technologies/poultrycare/internal/service/flocks"
	notificationsvc "github.com/felano-technologies/poultrycare/internal/service/notifications"
	statssvc "github.com/felano-technologies/poultrycare/internal/service/statistics"
	vaccinationsvc "github.com/felano-technologies/poultrycare/internal/service/vaccinations"
	"github.com/felano-technologies/poultrycare/pkg/clients/anthropic"
	"github.com/felano-technologies/poultrycare/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	flockSvc := flocksvc.NewService(mongoRepo.Flocks(), baseLogger.Named("svc.flocks"))
	vaccinationSvc := vaccinationsvc.NewService(mongoRepo.Vaccinations(), baseLogger.Named("svc.vaccinations"))
	statsSvc := statssvc.NewService(mongoRepo.Flocks(), mongoRepo.Vaccinations(), mongoRepo.Snapshots(), cfg.Statistics.FeedWindowMode, baseLogger.Named("svc.statistics"))
	notificationSvc := notificationsvc.NewService(mongoRepo.Flocks(), mongoRepo.Vaccinations(), mongoRepo.Notifications(), cfg.Notifications, baseLogger.Named("svc.notifications"))

	// Initialize AI client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, chat assistant disabled")
	}
	chatSvc := assistantsvc.NewService(aiClient, baseLogger.Named("svc.assistant"))

	engine := router.New(router.Handlers{
		Flocks:        handlers.NewFlockHandler(flockSvc, baseLogger.Named("handlers.flocks")),
		Stats:         handlers.NewStatsHandler(statsSvc, baseLogger.Named("handlers.stats")),
		Vaccinations:  handlers.NewVaccinationHandler(vaccinationSvc, baseLogger.Named("handlers.vaccinations")),
		Notifications: handlers.NewNotificationHandler(notificationSvc, baseLogger.Named("handlers.notifications")),
		Assistant:     handlers.NewAssistantHandler(chatSvc, baseLogger.Named("handlers.assistant")),
	}, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Snapshot, statsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
