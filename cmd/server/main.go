package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/analysis"
	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/keywords"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spacesedan/reviewlens/internal/sentiment"
	"github.com/spacesedan/reviewlens/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	slog.Info("[Main] Warming up VADER analyzer")
	vader := sentiment.NewVADER()

	extractor := keywords.NewExtractor("en")

	slog.Info("[Main] Loading transformer sentiment model",
		slog.String("model", cfg.SentimentModelName))
	var neural *sentiment.Neural
	classifier, err := clients.NewSentimentClassifier(cfg.SentimentModelName, cfg.ModelDir)
	if err != nil {
		// The server still starts; neural endpoints answer "not ready".
		slog.Error("[Main] Transformer model failed to load",
			slog.String("error", err.Error()))
		neural = sentiment.NewNeural(nil)
	} else {
		neural = sentiment.NewNeural(classifier)
	}

	svc := analysis.NewService(vader, neural, extractor)
	srv := server.New(cfg, svc)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           srv.Router(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("[Main] Starting server", slog.String("port", cfg.HTTPPort))
	err = server.Serve(ctx, httpServer)
	if classifier != nil {
		classifier.Close()
	}
	if err != nil {
		slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Main] Server stopped")
}
