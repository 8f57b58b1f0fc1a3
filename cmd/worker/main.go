package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"zzpboard/internal/mqhandler"
	"zzpboard/internal/repository"
	"zzpboard/internal/service/budget"
	"zzpboard/pkg/config"
	"zzpboard/pkg/db"
	"zzpboard/pkg/logger"
	"zzpboard/pkg/mq"
	"zzpboard/pkg/outbox"
	"zzpboard/pkg/redis"
	"zzpboard/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting zzpboard worker...",
		zap.String("db_host", cfg.DB.Host),
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

	deduper := util.NewDeduper(redisClient, 24*time.Hour)
	retryCounter := util.NewRetryCounter(redisClient, 1*time.Hour)

	// Repositories
	outboxRepo := outbox.NewRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn, outboxRepo, log)
	taskRepo := repository.NewTaskRepository(dbConn, outboxRepo, log)
	activityRepo := repository.NewActivityRepository(dbConn, outboxRepo, log)

	budgetService := budget.NewService(
		activityRepo,
		redisClient,
		time.Duration(cfg.Budget.CacheTTLSeconds)*time.Second,
		log,
	)

	taskChangedHandler := mqhandler.NewTaskChangedHandler(
		taskRepo, projectRepo, budgetService, deduper, retryCounter, log,
	)
	activityChangedHandler := mqhandler.NewActivityChangedHandler(budgetService, deduper, log)
	projectChangedHandler := mqhandler.NewProjectChangedHandler(budgetService, deduper, log)

	// MQ Consumer for task.changed
	log.Info("Initializing MQ consumer for task.changed...",
		zap.String("queue", "task.changed.q"),
		zap.String("routing_key", mq.RoutingKeyTaskChanged),
	)
	taskConsumer, err := mq.NewConsumer(cfg.MQ.URL, "task.changed.q", mq.RoutingKeyTaskChanged, log)
	if err != nil {
		log.Fatal("Failed to init task consumer", zap.Error(err))
	}
	defer taskConsumer.Stop()

	taskConsumer.SetHandler(taskChangedHandler.HandleTaskChanged)

	go func() {
		log.Info("Starting task.changed consumer...")
		if err := taskConsumer.StartConsuming(); err != nil {
			log.Fatal("Task consumer failed", zap.Error(err))
		}
	}()
	log.Info("task.changed consumer started successfully")

	// MQ Consumer for activity.changed
	log.Info("Initializing MQ consumer for activity.changed...",
		zap.String("queue", "activity.changed.q"),
		zap.String("routing_key", mq.RoutingKeyActivityChanged),
	)
	activityConsumer, err := mq.NewConsumer(cfg.MQ.URL, "activity.changed.q", mq.RoutingKeyActivityChanged, log)
	if err != nil {
		log.Fatal("Failed to init activity consumer", zap.Error(err))
	}
	defer activityConsumer.Stop()

	activityConsumer.SetHandler(activityChangedHandler.HandleActivityChanged)

	go func() {
		log.Info("Starting activity.changed consumer...")
		if err := activityConsumer.StartConsuming(); err != nil {
			log.Fatal("Activity consumer failed", zap.Error(err))
		}
	}()
	log.Info("activity.changed consumer started successfully")

	// MQ Consumer for project.changed
	log.Info("Initializing MQ consumer for project.changed...",
		zap.String("queue", "project.changed.q"),
		zap.String("routing_key", mq.RoutingKeyProjectChanged),
	)
	projectConsumer, err := mq.NewConsumer(cfg.MQ.URL, "project.changed.q", mq.RoutingKeyProjectChanged, log)
	if err != nil {
		log.Fatal("Failed to init project consumer", zap.Error(err))
	}
	defer projectConsumer.Stop()

	projectConsumer.SetHandler(projectChangedHandler.HandleProjectChanged)

	go func() {
		log.Info("Starting project.changed consumer...")
		if err := projectConsumer.StartConsuming(); err != nil {
			log.Fatal("Project consumer failed", zap.Error(err))
		}
	}()
	log.Info("project.changed consumer started successfully")

	log.Info("zzpboard worker is fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")
	taskConsumer.Stop()
	activityConsumer.Stop()
	projectConsumer.Stop()
	log.Info("Shutdown complete")
}
