// Package create реализует HTTP-обработчик для создания обзора игры.
//
// Handler принимает JSON с семью полями обзора, валидирует их, берёт ID владельца
// из контекста и возвращает созданную запись.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/game-reviews/internal/http/middlewarectx"
	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	"github.com/magabrotheeeer/game-reviews/internal/models"
)

// Handler управляет HTTP-запросами на создание обзоров.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики обзоров
	validate *validator.Validate // Валидатор входящих данных
}

// Service описывает интерфейс бизнес-логики создания обзора.
type Service interface {
	Create(ctx context.Context, userID string, fields models.GameFields) (*models.Game, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создать обзор
// @Description Создаёт обзор игры от имени текущего пользователя.
// @Tags Games
// @Accept  json
// @Produce  json
// @Param x-auth-token header string true "Токен сессии"
// @Param request body models.GameFields true "Поля обзора"
// @Success 200 {object} models.Game
// @Failure 400 {object} response.ValidationErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/games [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.game.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GameFields
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			log.Error("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(errs))
		return
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	game, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create game", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create game"))
		return
	}

	log.Info("game created", slog.String("id", game.ID))
	render.JSON(w, r, game)
}
