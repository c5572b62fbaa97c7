package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/server"
	"github.com/foodgram/backend/internal/service"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	var store service.ImageStore
	switch cfg.ImageStore {
	case "s3":
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatal("failed to configure S3", zap.Error(err))
		}
		store = service.NewS3ImageStore(s3cfg)
	default:
		local, err := service.NewLocalImageStore(cfg.MediaDir, cfg.BaseURL)
		if err != nil {
			log.Fatal("failed to configure media directory", zap.Error(err))
		}
		store = local
	}

	srv := server.New(cfg, db, redisClient, store, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatal("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
