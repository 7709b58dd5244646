package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	services "github.com/magabrotheeeer/game-reviews/internal/services/auth"
)

// Мок сервиса аутентификации
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	valid := Request{Email: "user1@example.com", Password: "password123"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantToken      string
		wantError      string
		wantFields     []response.FieldError
	}{
		{
			name:        "valid login",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "user1@example.com", "password123").Return("token-123", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantToken:      "token-123",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "user1@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "Password is required",
			wantFields:     []response.FieldError{{Param: "password", Msg: "Password is required"}},
		},
		{
			name:           "validation error - bad email",
			requestBody:    Request{Email: "user1", Password: "x"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "Please enter your email",
			wantFields:     []response.FieldError{{Param: "email", Msg: "Please enter your email"}},
		},
		{
			name:        "invalid credentials",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return("", fmt.Errorf("op: %w", services.ErrInvalidCredentials)).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid credentials",
		},
		{
			name:        "storage error",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(authMock)
			}
			handler := New(newNoopLogger(), authMock)

			var bodyBytes []byte
			if s, ok := tt.requestBody.(string); ok {
				bodyBytes = []byte(s)
			} else {
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got struct {
				Token  string                `json:"token"`
				Status string                `json:"status"`
				Error  string                `json:"error"`
				Errors []response.FieldError `json:"errors"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, response.StatusError, got.Status)
				assert.Equal(t, tt.wantError, got.Error)
				assert.Empty(t, got.Token)
			} else {
				assert.Empty(t, got.Status)
				assert.Equal(t, tt.wantToken, got.Token)
			}
			assert.Equal(t, tt.wantFields, got.Errors)
			authMock.AssertExpectations(t)
		})
	}
}

// Неизвестный email и неверный пароль неразличимы для клиента.
func TestLoginHandler_UnifiedFailureBody(t *testing.T) {
	authMock := new(AuthServiceMock)
	authMock.On("Login", mock.Anything, "unknown@example.com", mock.Anything).
		Return("", fmt.Errorf("lookup: %w", services.ErrInvalidCredentials)).Once()
	authMock.On("Login", mock.Anything, "user1@example.com", mock.Anything).
		Return("", fmt.Errorf("compare: %w", services.ErrInvalidCredentials)).Once()
	handler := New(newNoopLogger(), authMock)

	bodies := make([]string, 0, 2)
	for _, email := range []string{"unknown@example.com", "user1@example.com"} {
		b, err := json.Marshal(Request{Email: email, Password: "wrong"})
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(b)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
	authMock.AssertExpectations(t)
}
