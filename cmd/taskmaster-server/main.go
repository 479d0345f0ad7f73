package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yavdigital/taskmaster/internal/config"
	"github.com/yavdigital/taskmaster/internal/dataset"
	datasetrepo "github.com/yavdigital/taskmaster/internal/dataset/repositoryimpl"
	"github.com/yavdigital/taskmaster/internal/insight"
	"github.com/yavdigital/taskmaster/pkg/clog"
	"github.com/yavdigital/taskmaster/pkg/storage"

	server "github.com/yavdigital/taskmaster/internal"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewHTTPTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	// Setup storage
	var store storage.Storage
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	default:
		store, err = storage.NewLocal(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
	}

	// Setup services
	repo := datasetrepo.NewYAMLRepository(store)
	service := dataset.NewService(repo, env.DatasetEnv.FilterDebounce)

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := service.Restore(ctx); err != nil {
		slog.Error("failed to restore dataset snapshot", "error", err)
		os.Exit(1)
	}

	if env.DatasetEnv.WatchDir != "" {
		watcher := dataset.NewWatcher(env.DatasetEnv.WatchDir, service)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				slog.Error("watcher error", "error", err)
			}
		}()
	}

	srv := server.NewServer(
		env,
		dataset.NewServer(service),
		insight.NewServer(service),
	)

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
