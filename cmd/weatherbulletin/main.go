package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/somersetradio/weather-bulletin/internal/api/http"
	"github.com/somersetradio/weather-bulletin/internal/config"
	"github.com/somersetradio/weather-bulletin/internal/forecast"
	"github.com/somersetradio/weather-bulletin/internal/forecast/providers"
	"github.com/somersetradio/weather-bulletin/internal/pipeline"
	"github.com/somersetradio/weather-bulletin/internal/scheduler"
	"github.com/somersetradio/weather-bulletin/internal/speech"
	"github.com/somersetradio/weather-bulletin/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: CONFIG_FILE env or ./config.yaml)")
	oneshot := flag.Bool("oneshot", false, "generate one bulletin and exit")
	flag.Parse()

	log, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewMetOfficeProvider(httpClient, cfg.MetOfficeAPIKey, cfg.Timesteps)

	ctx := context.Background()
	synth, err := speech.NewGoogleSynthesizer(ctx, log, cfg.GoogleOAuthCreds, speech.VoiceConfig{
		LanguageCode: cfg.Voice.LanguageCode,
		Name:         cfg.Voice.Name,
		SpeakingRate: cfg.Voice.SpeakingRate,
		VolumeGainDB: *cfg.Voice.VolumeGainDB,
		Pitch:        *cfg.Voice.Pitch,
	})
	if err != nil {
		log.Fatal("failed to create speech synthesizer", zap.Error(err))
	}
	defer synth.Close()

	// In-memory bulletin history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	pipe := pipeline.New(log, provider, synth, memStore,
		forecast.Coordinates{Lat: cfg.Lat, Lon: cfg.Long},
		cfg.LocationName, cfg.OutputFile)

	if *oneshot {
		runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		b, err := pipe.Run(runCtx)
		if err != nil {
			log.Fatal("bulletin generation failed", zap.Error(err))
		}
		log.Info("bulletin generated", zap.String("audio", b.AudioPath))
		return
	}

	sched := scheduler.New(log, pipe, cfg.RefreshInterval, 2*time.Minute)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-bulletin",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})
	app.Use(recover.New())
	app.Use(logger.New())

	httpapi.RegisterRoutes(app, memStore, pipe)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("http server stopped", zap.Error(err))
		}
	}()
	log.Info("listening", zap.String("port", cfg.Port))

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func initLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
