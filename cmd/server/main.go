package main

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"

	httpadapter "cv-builder/internal/adapter/http"
	"cv-builder/internal/config"
	"cv-builder/internal/logger"
	"cv-builder/internal/model"
	"cv-builder/internal/store"
	"cv-builder/internal/usecase"
	infra "cv-builder/pkg/infrastructure"
)

func main() {
	var (
		configPath = pflag.String("config", "", "path to config.yaml (optional)")
		port       = pflag.String("port", "", "listen port (overrides config)")
		dataFile   = pflag.String("data", "", "path to the CV data file (overrides config)")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	logger.Init(cfg.Logger)

	renderer := infra.NewChromedpRenderer(cfg.Render.ChromePath, cfg.Render.Timeout())
	fileStore := store.NewFileStore(cfg.DataFile)
	validator := model.NewValidator(filepath.Join(cfg.TemplatesDir, "cv.schema.json"))
	exporter := usecase.NewExporter(renderer, cfg.TemplatesDir, cfg.DefaultPhoto)

	app := fiber.New(fiber.Config{
		AppName:               "cv-builder",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	h := httpadapter.NewHandler(fileStore, validator, exporter, cfg.WebDir)
	h.Register(app)

	logger.Info().
		Str("port", cfg.Server.Port).
		Str("data_file", cfg.DataFile).
		Msg("cv builder listening")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
