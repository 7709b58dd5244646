package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	"github.com/magabrotheeeer/game-reviews/internal/models"
)

type Service interface {
	List(ctx context.Context) ([]*models.Game, error)
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
// @Summary Список обзоров
// @Description Все обзоры, новые первыми.
// @Tags Games
// @Produce json
// @Param x-auth-token header string true "Токен сессии"
// @Success 200 {array} models.Game
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/games [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.game.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list games", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list games"))
		return
	}

	if res == nil {
		res = []*models.Game{}
	}
	log.Info("list games", "count", len(res))
	render.JSON(w, r, res)
}
