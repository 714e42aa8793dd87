package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	handlers "yatube/internal/handler"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/storage"
)

type App struct {
	Cfg      *config.Config
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Cache    cache.ResponseCache
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)

	return &App{
		Cfg:      cfg,
		DB:       db,
		Repo:     repo,
		Services: services,
		Cache:    cache.New(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix),
	}, nil
}

func (a *App) Handler() http.Handler {
	return handlers.NewRouter(handlers.NewHandlers(a.Services, a.Cfg), a.Cache)
}

func (a *App) Close() {
	if closer, ok := a.Cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("ошибка закрытия кеша", "error", err)
		}
	}
	if err := a.DB.CloseDB(); err != nil {
		slog.Warn("ошибка закрытия БД", "error", err)
	}
}
