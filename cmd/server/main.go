package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/gopalt/burnscar-backend-go/internal/api"
	"github.com/gopalt/burnscar-backend-go/internal/config"
	"github.com/gopalt/burnscar-backend-go/internal/ee"
	"github.com/gopalt/burnscar-backend-go/internal/handler"
	"github.com/gopalt/burnscar-backend-go/internal/repository"
	"github.com/gopalt/burnscar-backend-go/internal/service"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := ee.NewClient(context.Background(), ee.ClientConfig{
		Project:         cfg.GEEProject,
		BaseURL:         cfg.GEEBaseURL,
		CredentialsFile: cfg.GEECredentialsFile,
		Timeout:         cfg.HTTPTimeout,
	})
	if err != nil {
		slog.Error("failed to create earth engine client", "error", err)
		os.Exit(1)
	}

	boundary := service.NewBoundaryService(client)
	landcover := service.NewLandcoverService(client, cfg.LatestLandcoverYear)
	detection := service.NewDetectionService(client, boundary, landcover, cfg.RequireAgriMask)
	results := repository.NewResultRepository(cfg.ResultTTL)

	router := api.NewRouter(cfg,
		handler.NewDetectionHandler(detection, results),
		handler.NewRegionHandler(),
	)

	slog.Info("starting server", "port", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
