package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"zzpboard/internal/handler"
	"zzpboard/internal/httpserver"
	"zzpboard/internal/repository"
	"zzpboard/internal/service/auth"
	"zzpboard/internal/service/budget"
	"zzpboard/pkg/config"
	"zzpboard/pkg/db"
	"zzpboard/pkg/logger"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/outbox"
	"zzpboard/pkg/redis"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting zzpboard server...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
	)

	// DB
	log.Info("Initializing database connection...")
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established successfully")

	// Redis
	redisClient := redis.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	// MQ publisher + change-event dispatcher
	log.Info("Initializing MQ publisher...")
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	outboxRepo := outbox.NewRepository(dbConn)
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log)
	replayService := outbox.NewReplayService(outboxRepo, publisher)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	go dispatcher.Start(dispatcherCtx)

	// Repositories
	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn, outboxRepo, log)
	clientRepo := repository.NewClientRepository(dbConn, log)
	taskRepo := repository.NewTaskRepository(dbConn, outboxRepo, log)
	activityRepo := repository.NewActivityRepository(dbConn, outboxRepo, log)
	deliverableRepo := repository.NewDeliverableRepository(dbConn, log)

	// Services
	authService := auth.NewService(userRepo, cfg.JWT.Secret)
	budgetService := budget.NewService(
		activityRepo,
		redisClient,
		time.Duration(cfg.Budget.CacheTTLSeconds)*time.Second,
		log,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	projectHandler := handler.NewProjectHandler(projectRepo, budgetService, log)
	clientHandler := handler.NewClientHandler(clientRepo, log)
	taskHandler := handler.NewTaskHandler(taskRepo, log)
	activityHandler := handler.NewActivityHandler(activityRepo, budgetService, log)
	deliverableHandler := handler.NewDeliverableHandler(deliverableRepo, log)
	dashboardHandler := handler.NewDashboardHandler(activityRepo, projectRepo, log)

	router := httpserver.NewRouter(
		authHandler,
		projectHandler,
		clientHandler,
		taskHandler,
		activityHandler,
		deliverableHandler,
		dashboardHandler,
		replayService,
		publisher,
		cfg.JWT.Secret,
		dbConn,
		log,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("zzpboard server is fully initialized and running",
		zap.String("http_port", cfg.Server.Port),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	stopDispatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
