package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/game-reviews/internal/http/middlewarectx"
	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	services "github.com/magabrotheeeer/game-reviews/internal/services/game"
)

type Service interface {
	Remove(ctx context.Context, id, userID string) error
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
// @Summary Удалить обзор
// @Tags Games
// @Produce json
// @Param x-auth-token header string true "Токен сессии"
// @Param id path string true "ID обзора"
// @Success 200 {object} response.MessageResponse "game removed"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Обзор принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/games/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.game.remove"

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

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Info("malformed game id", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("game not found"))
		return
	}

	if err := h.service.Remove(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrGameNotFound):
			log.Info("game not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("game not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Warn("remove by non-owner", slog.String("id", id), slog.String("user_id", userID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("user not authorized"))
		default:
			log.Error("failed to remove game", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove game"))
		}
		return
	}

	log.Info("success to remove game", slog.String("id", id))
	render.JSON(w, r, response.MessageResponse{Msg: "game removed"})
}
