package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/metinatakli/movie-favorites/internal/app"
	"github.com/metinatakli/movie-favorites/internal/catalog"
	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/metinatakli/movie-favorites/internal/favorites"
	"github.com/metinatakli/movie-favorites/internal/translate"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App       *app.Application
	Favorites *favorites.Store
	Slots     domain.SlotStore
	Redis     *redis.Client
	close     func()
}

// newTestApp wires the application the way Run does, with the outbound
// clients pointed at the fake servers.
func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	slots, closeSlots, err := app.NewSlotStore(cfg, redisClient)
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	storage := favorites.NewStorage(slots, cfg.Storage.Key, logger)
	store := favorites.Initialize(context.Background(), storage)

	application, err := app.NewApp(cfg, app.Dependencies{
		Logger:         logger,
		SessionManager: app.NewSessionManager(redisClient),
		Catalog:        catalog.NewOMDbClient(catalog.Config(cfg.Catalog)),
		Translator:     translate.NewLibreTranslateClient(cfg.Translate.BaseUrl, cfg.Translate.ApiKey, cfg.Translate.Timeout),
		Favorites:      store,
	})
	if err != nil {
		closeSlots()
		redisClient.Close()
		return nil, err
	}

	return &TestApp{
		App:       application,
		Favorites: store,
		Slots:     slots,
		Redis:     redisClient,
		close: func() {
			_ = application.Close()
			closeSlots()
			redisClient.Close()
		},
	}, nil
}

func (a *TestApp) Close() {
	a.close()
}
