package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/config"
	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/modules/meeting"
	"meeting-scheduler/modules/participant"
	"meeting-scheduler/modules/scheduling"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Run boots the API server and the background worker, blocking until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	cacheClient, err := cache.InitCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer cacheClient.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	queueClient := asynq.NewClient(redisOpt)
	defer queueClient.Close()

	e := echo.New()
	e.HideBanner = true

	mw := middleware.NewMiddleware()
	mw.Setup(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Module registration
	participant.Init(e, db, mw)
	meeting.Init(e, db, mw)
	schedulingHandler := scheduling.Init(e, db, cacheClient, queueClient, mw)

	// Background worker for async scheduling runs
	worker := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Scheduler.WorkerConcurrency,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskTypeSchedulingRun, schedulingHandler.HandleRunTask)

	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("Server:Worker:Error", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
