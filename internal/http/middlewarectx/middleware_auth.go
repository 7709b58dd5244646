// Package middlewarectx содержит HTTP middleware приложения.
//
// AuthMiddleware проверяет токен сессии в заголовке x-auth-token и в случае успеха
// кладёт ID пользователя в контекст запроса для дальнейшего использования в обработчиках.
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	customjwt "github.com/magabrotheeeer/game-reviews/internal/lib/jwt"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
)

// TokenHeader - заголовок, в котором клиент передаёт токен сессии.
const TokenHeader = "x-auth-token"

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID - ключ для ID пользователя в контексте.
const UserID Key = "user_id"

// Service описывает интерфейс сервиса для валидации токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// UserIDFromContext возвращает ID пользователя, положенный AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

// WithUserID возвращает копию контекста с ID пользователя.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserID, userID)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен в заголовке x-auth-token.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := r.Header.Get(TokenHeader)
			if token == "" {
				log.Info("request without token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no token, authorization denied"))
				return
			}

			userID, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, customjwt.ErrExpiredToken) {
					log.Info("token expired", sl.Err(err))
				} else {
					log.Warn("invalid token", sl.Err(err))
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("token is not valid"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
