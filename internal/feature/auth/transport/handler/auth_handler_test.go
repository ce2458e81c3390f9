package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed_backend/internal/feature/auth/domain"
	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error)
	LoginFunc    func(ctx context.Context, email, password string) (string, *entity.User, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return "", nil, domain.ErrUserAlreadyExists
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil, domain.ErrInvalidCredentials
}

func newTestRouter(uc AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(uc)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	alice := &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "secret-hash"}

	tests := []struct {
		name           string
		requestBody    gin.H
		registerFunc   func(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error)
		expectedStatus int
	}{
		{
			name:        "success: user registration",
			requestBody: gin.H{"name": "Alice", "email": "alice@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error) {
				return "issued-token", alice, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: name too short",
			requestBody:    gin.H{"name": "A", "email": "alice@example.com", "password": "password123"},
			registerFunc:   nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "Alice", "email": "invalid-email", "password": "password123"},
			registerFunc:   nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"name": "Alice", "email": "alice@example.com", "password": "short"},
			registerFunc:   nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: duplicate email",
			requestBody: gin.H{"name": "Alice", "email": "taken@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error) {
				return "", nil, domain.ErrUserAlreadyExists
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "failure: store unavailable",
			requestBody: gin.H{"name": "Alice", "email": "alice@example.com", "password": "password123"},
			registerFunc: func(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error) {
				return "", nil, domain.ErrUnavailable
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAuthUsecase{RegisterFunc: tt.registerFunc})

			w := doJSON(t, router, http.MethodPost, "/api/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp struct {
					Token string                 `json:"token"`
					User  map[string]interface{} `json:"user"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "issued-token", resp.Token)
				assert.Equal(t, "alice@example.com", resp.User["email"])
			}

			if tt.expectedStatus == http.StatusBadRequest {
				var resp struct {
					Message string `json:"message"`
					Errors  []struct {
						Field   string `json:"field"`
						Message string `json:"message"`
					} `json:"errors"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "validation failed", resp.Message)
				assert.NotEmpty(t, resp.Errors, "validation failures include field detail")
			}
		})
	}
}

// TestAuthHandler_Register_NeverLeaksPassword は登録レスポンスに
// パスワード関連のフィールドが一切現れないことを検証します。
func TestAuthHandler_Register_NeverLeaksPassword(t *testing.T) {
	router := newTestRouter(&mockAuthUsecase{
		RegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error) {
			return "tok", &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "super-secret-hash"}, nil
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Alice", "email": "alice@example.com", "password": "password123"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "super-secret-hash")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Login(t *testing.T) {
	alice := &entity.User{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "secret-hash"}

	tests := []struct {
		name           string
		requestBody    gin.H
		loginFunc      func(ctx context.Context, email, password string) (string, *entity.User, error)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "alice@example.com", "password": "password123"},
			loginFunc: func(ctx context.Context, email, password string) (string, *entity.User, error) {
				return "issued-token", alice, nil
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "login successful",
		},
		{
			name:           "failure: invalid email format",
			requestBody:    gin.H{"email": "not-an-email", "password": "password123"},
			loginFunc:      nil,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "validation failed",
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "alice@example.com"},
			loginFunc:      nil,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "validation failed",
		},
		{
			name:        "failure: bad credentials",
			requestBody: gin.H{"email": "alice@example.com", "password": "wrong"},
			loginFunc: func(ctx context.Context, email, password string) (string, *entity.User, error) {
				return "", nil, domain.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "invalid email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockAuthUsecase{LoginFunc: tt.loginFunc})

			w := doJSON(t, router, http.MethodPost, "/api/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMsg, resp["message"])

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "issued-token", resp["token"])
				assert.NotContains(t, w.Body.String(), "secret-hash")
			}
		})
	}
}
