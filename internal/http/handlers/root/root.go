// Package root отвечает на запрос к корню API, используется как проверка живости.
package root

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Message - текст ответа на GET /.
const Message = "http get request sent to root api endpoint"

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Проверка доступности API
// @Tags Health
// @Produce plain
// @Success 200 {string} string "http get request sent to root api endpoint"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.root"
	h.log.Debug("root endpoint hit",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.PlainText(w, r, Message)
}
