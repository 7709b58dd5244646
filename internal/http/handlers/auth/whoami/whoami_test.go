package whoami

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/game-reviews/internal/http/middlewarectx"
	"github.com/magabrotheeeer/game-reviews/internal/models"
	services "github.com/magabrotheeeer/game-reviews/internal/services/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) WhoAmI(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestWhoAmIHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   []string
		forbiddenBody  []string
	}{
		{
			name:   "профиль найден",
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("WhoAmI", mock.Anything, "user-1").Return(&models.User{
					ID:           "user-1",
					Name:         "Alice",
					Email:        "alice@example.com",
					PasswordHash: "$2a$10$secret",
					CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`{"id":"user-1"`, `"name":"Alice"`, `"email":"alice@example.com"`},
			forbiddenBody:  []string{"secret", "password", `"status"`},
		},
		{
			name:           "нет пользователя в контексте",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   []string{`"error":"unauthorized"`},
		},
		{
			name:   "пользователь удалён",
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("WhoAmI", mock.Anything, "user-1").Return(nil, services.ErrUserNotFound).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   []string{`"error":"user not found"`},
		},
		{
			name:   "ошибка хранилища",
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("WhoAmI", mock.Anything, "user-1").Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{`"error":"server error"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
			if tt.userID != "" {
				req = req.WithContext(middlewarectx.WithUserID(req.Context(), tt.userID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), s)
			}
			for _, s := range tt.forbiddenBody {
				assert.NotContains(t, w.Body.String(), s)
			}
			mockService.AssertExpectations(t)
		})
	}
}
