package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // Europe/Prague без системной базы зон

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/mcr-results/config"
	"github.com/Dosada05/mcr-results/db"
	"github.com/Dosada05/mcr-results/feed"
	"github.com/Dosada05/mcr-results/handlers"
	"github.com/Dosada05/mcr-results/repositories"
	api "github.com/Dosada05/mcr-results/routes"
	"github.com/Dosada05/mcr-results/services"
	"github.com/Dosada05/mcr-results/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if lvl, err := cfg.SlogLevel(); err == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("cache_driver", cfg.CacheDriver))

	// Подключение к хранилищу кэша
	dbConn, err := db.Open(cfg.CacheDriver, cfg.CacheDSN, 5*time.Second)
	if err != nil {
		logger.Error("failed to open cache database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close cache database", slog.Any("error", err))
		} else {
			logger.Info("cache database closed")
		}
	}()

	var cacheRepo repositories.CacheRepository
	if cfg.CacheDriver == "postgres" {
		cacheRepo = repositories.NewPostgresCacheRepository(dbConn)
	} else {
		cacheRepo = repositories.NewSQLiteCacheRepository(dbConn)
	}
	if err := cacheRepo.EnsureSchema(context.Background()); err != nil {
		logger.Error("failed to prepare cache schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("cache ready")

	// Резервные копии в Cloudflare R2 (необязательно)
	var store storage.ObjectStore
	if cfg.R2.Enabled() {
		store, err = storage.NewCloudflareR2Store(context.Background(), cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 store", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 backup store initialized", slog.String("bucket", cfg.R2.BucketName))
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	resources := buildResources(cfg, client, store)

	tournamentService := services.NewTournamentService(services.TournamentDeps{
		Loader:    feed.NewLoader(services.NewFeedCache(cacheRepo), logger),
		Resources: resources,
		Cache:     cacheRepo,
		Store:     store,
		DayDates:  cfg.TournamentDays,
		Location:  cfg.Location(),
		GroupLegs: cfg.GroupLegs,
	}, logger)
	logger.Info("Services initialized", slog.Int("resources", len(resources)))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Периодическое обновление данных
	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		logger.Info("refresh scheduler started", slog.Duration("interval", cfg.RefreshInterval))

		refresh := func() {
			if err := tournamentService.Refresh(ctx); err != nil {
				logger.Warn("Scheduler: refresh incomplete", slog.Any("error", err))
			}
		}
		refresh()

		for {
			select {
			case <-ticker.C:
				refresh()
			case <-ctx.Done():
				logger.Info("refresh scheduler stopped")
				return
			}
		}
	}()

	// Инициализация обработчиков HTTP
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	adminHandler := handlers.NewAdminHandler(tournamentService)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, tournamentHandler, adminHandler, []byte(cfg.JWTSecretKey), cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.FetchTimeout*3 + 10*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stop()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// buildResources wires each data file to its live URL and its backup: the R2
// bucket when configured, otherwise the static backup file next to the live one.
func buildResources(cfg *config.Config, client *http.Client, store storage.ObjectStore) []services.Resource {
	files := map[string]string{
		services.ResourceSchedule: cfg.ScheduleFile,
		services.ResourceResults:  cfg.ResultsFile,
		services.ResourceTeams:    cfg.TeamsFile,
	}
	backupBase := cfg.BackupBaseURL
	if backupBase == "" {
		backupBase = cfg.DataBaseURL
	}

	out := make([]services.Resource, 0, len(files))
	for _, name := range services.ResourceNames() {
		file := files[name]
		backupKey := cfg.BackupName(file)

		var backup feed.Source = feed.NewHTTPSource(config.ResourceURL(backupBase, backupKey), client)
		if store != nil {
			backup = &feed.ObjectSource{Store: store, Key: backupKey}
		}
		out = append(out, services.Resource{
			Resource: feed.Resource{
				Name:     name,
				Primary:  feed.NewHTTPSource(config.ResourceURL(cfg.DataBaseURL, file), client),
				Backup:   backup,
				CacheKey: services.CacheKeyFor(name),
				Validate: services.ValidatorFor(name),
			},
			BackupKey: backupKey,
		})
	}
	return out
}
