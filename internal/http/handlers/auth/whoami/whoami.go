// Package whoami возвращает профиль пользователя, которому принадлежит токен запроса.
package whoami

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/game-reviews/internal/http/middlewarectx"
	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	"github.com/magabrotheeeer/game-reviews/internal/models"
	services "github.com/magabrotheeeer/game-reviews/internal/services/auth"
)

type Service interface {
	WhoAmI(ctx context.Context, userID string) (*models.User, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Param x-auth-token header string true "Токен сессии"
// @Success 200 {object} models.User
// @Failure 401 {object} response.ErrorResponse "Нет токена или пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/auth [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.whoami"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.WhoAmI(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Info("token owner no longer exists", slog.String("user_id", userID))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to load user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("server error"))
		return
	}

	render.JSON(w, r, user)
}
