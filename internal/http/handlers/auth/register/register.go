// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler валидирует имя, email и пароль, создаёт пользователя через сервис
// и сразу возвращает токен сессии, чтобы клиенту не требовался отдельный вход.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	"github.com/magabrotheeeer/game-reviews/internal/lib/sl"
	services "github.com/magabrotheeeer/game-reviews/internal/services/auth"
)

// Request - входные данные для регистрации.
type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

const passwordMessage = "Please enter a password with 6 to 72 characters"

var validationMessages = map[string]string{
	"Name":     "Please enter your name",
	"Email":    "Please enter your email",
	"Password": passwordMessage,
}

// Service описывает регистрацию пользователя с выдачей токена.
type Service interface {
	Register(ctx context.Context, name, email, password string) (string, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и возвращает токен сессии.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя, email и пароль"
// @Success 200 {object} response.TokenResponse "Токен сессии"
// @Failure 400 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 422 {object} response.ValidationErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			log.Error("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationErrorWithMessages(errs, validationMessages))
		return
	}

	token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			log.Info("user already exists", slog.String("email", req.Email))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user already exists"))
			return
		}
		if errors.Is(err, services.ErrPasswordTooLong) {
			log.Info("password exceeds bcrypt limit")
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.FieldValidationError("password", passwordMessage))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("server error"))
		return
	}

	log.Info("user registered")
	render.JSON(w, r, response.TokenResponse{Token: token})
}
