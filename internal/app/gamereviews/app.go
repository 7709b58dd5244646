package gamereviews

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/game-reviews/internal/cache"
	"github.com/magabrotheeeer/game-reviews/internal/config"
	"github.com/magabrotheeeer/game-reviews/internal/http/middlewarectx"
	"github.com/magabrotheeeer/game-reviews/internal/lib/jwt"
	"github.com/magabrotheeeer/game-reviews/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	"github.com/magabrotheeeer/game-reviews/internal/migrations"
	authservice "github.com/magabrotheeeer/game-reviews/internal/services/auth"
	gameservice "github.com/magabrotheeeer/game-reviews/internal/services/game"
	"github.com/magabrotheeeer/game-reviews/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App - HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	closers []io.Closer
}

// New подключается к хранилищу, накатывает миграции, поднимает опциональные
// Redis и RabbitMQ и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gamereviews.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{logger: logger, db: db}

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var gameCache gameservice.Cache = cache.Noop{}
	if cfg.Redis.Address != "" {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, redisCache)
		gameCache = redisCache
		logger.Info("redis cache enabled", slog.String("address", cfg.Redis.Address))
	}

	var events gameservice.EventPublisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		publisher, err := newEventPublisher(cfg.RabbitMQ)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.closers = append(app.closers, publisher)
		events = publisher
		logger.Info("review events enabled", slog.String("exchange", cfg.RabbitMQ.Exchange))
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, logger)
	gameService := gameservice.NewGameService(db, gameCache, events, logger, cfg.Redis.TTL)

	router := chi.NewRouter()
	RegisterRoutes(router, RouterDeps{
		Logger:        logger,
		AuthService:   authService,
		GameService:   gameService,
		Metrics:       middlewarectx.NewHTTPMetrics(prometheus.DefaultRegisterer),
		AllowedOrigin: cfg.CORS.AllowedOrigin,
	})

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

func newEventPublisher(cfg config.RabbitMQ) (*rabbitmq.EventPublisher, error) {
	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.Delay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupExchange(conn, cfg.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return rabbitmq.NewEventPublisher(ch, cfg.Exchange, ch, conn), nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в обратном порядке создания.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
