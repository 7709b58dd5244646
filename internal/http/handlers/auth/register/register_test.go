package register

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
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/game-reviews/internal/http/response"
	services "github.com/magabrotheeeer/game-reviews/internal/services/auth"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, password string) (string, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	valid := Request{Name: "user1", Email: "user1@example.com", Password: "password123"}
	longPassword := strings.Repeat("p", 80)

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
			name:        "valid registration",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, "user1", "user1@example.com", "password123").
					Return("token-123", nil).Once()
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
			requestBody:    Request{Name: "user1", Email: "user1@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      passwordMessage,
			wantFields:     []response.FieldError{{Param: "password", Msg: passwordMessage}},
		},
		{
			name:           "validation error - every field",
			requestBody:    Request{Email: "bad-email", Password: "123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "Please enter your name, Please enter your email, " + passwordMessage,
			wantFields: []response.FieldError{
				{Param: "name", Msg: "Please enter your name"},
				{Param: "email", Msg: "Please enter your email"},
				{Param: "password", Msg: passwordMessage},
			},
		},
		{
			name:           "password longer than bcrypt accepts",
			requestBody:    Request{Name: "Long", Email: "long@x.com", Password: longPassword},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      passwordMessage,
			wantFields:     []response.FieldError{{Param: "password", Msg: passwordMessage}},
		},
		{
			name:        "multibyte password over 72 bytes",
			requestBody: Request{Name: "Long", Email: "long@x.com", Password: strings.Repeat("я", 40)},
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("", fmt.Errorf("op: %w", services.ErrPasswordTooLong)).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      passwordMessage,
			wantFields:     []response.FieldError{{Param: "password", Msg: passwordMessage}},
		},
		{
			name:        "user already exists",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("", fmt.Errorf("op: %w", services.ErrUserExists)).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "user already exists",
		},
		{
			name:        "storage error",
			requestBody: valid,
			setupMock: func(m *AuthServiceMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("", errors.New("db error")).Once()
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
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(bodyBytes))
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
