// Package gamereviews собирает приложение: хранилище, сервисы и HTTP-маршруты.
package gamereviews

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/game-reviews/docs"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/auth/whoami"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/game/create"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/game/list"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/game/read"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/game/remove"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/game/update"
	"github.com/magabrotheeeer/game-reviews/internal/http/handlers/root"
	"github.com/magabrotheeeer/game-reviews/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/game-reviews/internal/services/auth"
	gameservice "github.com/magabrotheeeer/game-reviews/internal/services/game"
)

// RouterDeps - зависимости, нужные для регистрации маршрутов.
type RouterDeps struct {
	Logger        *slog.Logger
	AuthService   *authservice.AuthService
	GameService   *gameservice.GameService
	Metrics       *middlewarectx.HTTPMetrics
	AllowedOrigin string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, deps RouterDeps) {
	logger := deps.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(deps.Metrics),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{deps.AllowedOrigin},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middlewarectx.TokenHeader},
			MaxAge:         300,
		}),
	)

	r.Get("/", root.New(logger).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users", register.New(logger, deps.AuthService).ServeHTTP)
		r.Post("/login", login.New(logger, deps.AuthService).ServeHTTP)

		// Группа с проверкой токена
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(deps.AuthService, logger))
			r.Get("/auth", whoami.New(logger, deps.AuthService).ServeHTTP)
			r.Post("/games", create.New(logger, deps.GameService).ServeHTTP)
			r.Get("/games", list.New(logger, deps.GameService).ServeHTTP)
			r.Get("/games/{id}", read.New(logger, deps.GameService).ServeHTTP)
			r.Put("/games/{id}", update.New(logger, deps.GameService).ServeHTTP)
			r.Delete("/games/{id}", remove.New(logger, deps.GameService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
