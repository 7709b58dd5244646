// Package update реализует частичное обновление обзора владельцем.
// Пустые и отсутствующие в запросе поля сохраняют прежние значения.
package update

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
	"github.com/magabrotheeeer/game-reviews/internal/models"
	services "github.com/magabrotheeeer/game-reviews/internal/services/game"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Update(ctx context.Context, id, userID string, patch models.GameFields) (*models.Game, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить обзор
// @Description Переносит в обзор непустые поля запроса. Доступно только владельцу.
// @Tags Games
// @Accept json
// @Produce json
// @Param x-auth-token header string true "Токен сессии"
// @Param id path string true "ID обзора"
// @Param request body models.GameFields false "Изменяемые поля"
// @Success 200 {object} models.Game
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Обзор принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/games/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.game.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GameFields
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

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

	game, err := h.service.Update(r.Context(), id, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGameNotFound):
			log.Info("game not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("game not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Warn("update by non-owner", slog.String("id", id), slog.String("user_id", userID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("user not authorized"))
		default:
			log.Error("failed to update game", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update game"))
		}
		return
	}

	log.Info("success to update game", slog.String("id", id))
	render.JSON(w, r, game)
}
