// Package read реализует HTTP-обработчик для получения обзора по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику чтения
// и возвращает обзор в JSON-формате. Некорректный ID отвечает так же, как отсутствующий.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	"github.com/magabrotheeeer/game-reviews/internal/models"
	services "github.com/magabrotheeeer/game-reviews/internal/services/game"
)

// Handler обрабатывает запросы на получение обзора по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения обзора по ID
}

// Service описывает интерфейс бизнес-логики чтения обзора.
type Service interface {
	Read(ctx context.Context, id string) (*models.Game, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить обзор
// @Tags Games
// @Produce json
// @Param x-auth-token header string true "Токен сессии"
// @Param id path string true "ID обзора"
// @Success 200 {object} models.Game
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/games/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.game.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Info("malformed game id", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("game not found"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			log.Info("game not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("game not found"))
			return
		}
		log.Error("failed to read game", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read game"))
		return
	}

	log.Debug("success to read game", slog.String("id", res.ID))
	render.JSON(w, r, res)
}
