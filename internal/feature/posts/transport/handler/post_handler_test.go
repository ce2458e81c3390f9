package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/posts/domain"
	"feed_backend/internal/feature/posts/domain/entity"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/shared/authz"
	"feed_backend/internal/shared/pagination"
)

// mockPostUsecase is a mock implementation of the PostUsecase interface.
type mockPostUsecase struct {
	CreateFunc   func(ctx context.Context, author *authentity.User, content string) (*entity.Post, error)
	DeleteFunc   func(ctx context.Context, actorID, postID uint) error
	ListFeedFunc func(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error)
}

func (m *mockPostUsecase) Create(ctx context.Context, author *authentity.User, content string) (*entity.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, author, content)
	}
	return nil, domain.ErrInvalidContent
}

func (m *mockPostUsecase) Delete(ctx context.Context, actorID, postID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actorID, postID)
	}
	return domain.ErrPostNotFound
}

func (m *mockPostUsecase) ListFeed(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error) {
	if m.ListFeedFunc != nil {
		return m.ListFeedFunc(ctx, authorID, p)
	}
	return nil, pagination.Result{CurrentPage: p.Page}, nil
}

// stubResolver resolves every verified token to the same user, letting the
// real AuthRequired middleware populate the request context.
type stubResolver struct {
	user *authentity.User
}

func (s *stubResolver) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	return s.user, nil
}

var testUser = &authentity.User{ID: 1, Name: "Alice", Email: "a@x.com"}

// newTestRouter wires the handler behind the real auth middleware so the
// protected routes resolve testUser.
func newTestRouter(uc PostUsecase) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)

	gen := jwtmw.NewGenerator("test-secret", time.Hour)
	token, _ := gen.GenerateToken(testUser.ID)

	h := NewPostHandler(uc)
	r := gin.New()
	r.GET("/api/posts", h.List)
	r.GET("/api/posts/user/:userId", h.ListByAuthor)

	protected := r.Group("/", jwtmw.AuthRequired(gen, &stubResolver{user: testUser}))
	protected.POST("/api/posts", h.Create)
	protected.DELETE("/api/posts/:postId", h.Delete)

	return r, token
}

func newTestPost(id uint) entity.Post {
	return entity.Post{
		ID:       id,
		Content:  "hello",
		AuthorID: testUser.ID,
		Author:   *testUser,
	}
}

func TestPostHandler_List(t *testing.T) {
	t.Run("returns posts with pagination envelope", func(t *testing.T) {
		uc := &mockPostUsecase{
			ListFeedFunc: func(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error) {
				assert.Nil(t, authorID, "global feed has no author filter")
				assert.Equal(t, 2, p.Page)
				assert.Equal(t, 5, p.Limit)
				return []entity.Post{newTestPost(1)}, pagination.Result{
					CurrentPage: 2, TotalPages: 3, TotalItems: 11, HasMore: true,
				}, nil
			},
		}
		router, _ := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodGet, "/api/posts?page=2&limit=5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Posts      []map[string]interface{} `json:"posts"`
			Pagination map[string]interface{}   `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Posts, 1)
		assert.Equal(t, "hello", resp.Posts[0]["content"])
		assert.Equal(t, float64(2), resp.Pagination["currentPage"])
		assert.Equal(t, float64(11), resp.Pagination["totalPosts"])
		assert.Equal(t, true, resp.Pagination["hasMore"])

		// The embedded author view must never leak the password hash.
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("zero limit is rejected", func(t *testing.T) {
		router, _ := newTestRouter(&mockPostUsecase{})

		req := httptest.NewRequest(http.MethodGet, "/api/posts?limit=0", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store outage maps to 503", func(t *testing.T) {
		uc := &mockPostUsecase{
			ListFeedFunc: func(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error) {
				return nil, pagination.Result{}, domain.ErrUnavailable
			},
		}
		router, _ := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestPostHandler_ListByAuthor(t *testing.T) {
	t.Run("forwards the author filter", func(t *testing.T) {
		uc := &mockPostUsecase{
			ListFeedFunc: func(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error) {
				require.NotNil(t, authorID)
				assert.Equal(t, uint(42), *authorID)
				return nil, pagination.Result{CurrentPage: 1}, nil
			},
		}
		router, _ := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/user/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-numeric user id is rejected", func(t *testing.T) {
		router, _ := newTestRouter(&mockPostUsecase{})

		req := httptest.NewRequest(http.MethodGet, "/api/posts/user/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostHandler_Create(t *testing.T) {
	t.Run("authenticated user creates a post", func(t *testing.T) {
		uc := &mockPostUsecase{
			CreateFunc: func(ctx context.Context, author *authentity.User, content string) (*entity.Post, error) {
				assert.Equal(t, testUser.ID, author.ID)
				assert.Equal(t, "hello world", content)
				p := newTestPost(10)
				p.Content = content
				return &p, nil
			},
		}
		router, token := newTestRouter(uc)

		body, _ := json.Marshal(gin.H{"content": "hello world"})
		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Message string                 `json:"message"`
			Post    map[string]interface{} `json:"post"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "post created successfully", resp.Message)
		assert.Equal(t, "hello world", resp.Post["content"])
	})

	t.Run("missing token is rejected before the usecase runs", func(t *testing.T) {
		uc := &mockPostUsecase{
			CreateFunc: func(ctx context.Context, author *authentity.User, content string) (*entity.Post, error) {
				t.Error("usecase must not run without authentication")
				return nil, nil
			},
		}
		router, _ := newTestRouter(uc)

		body, _ := json.Marshal(gin.H{"content": "hello"})
		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("content over 280 characters is rejected", func(t *testing.T) {
		router, token := newTestRouter(&mockPostUsecase{})

		body, _ := json.Marshal(gin.H{"content": strings.Repeat("x", 281)})
		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		deleteFunc     func(ctx context.Context, actorID, postID uint) error
		expectedStatus int
	}{
		{
			name: "success",
			deleteFunc: func(ctx context.Context, actorID, postID uint) error {
				if actorID != testUser.ID || postID != 10 {
					t.Errorf("unexpected args: actor=%d post=%d", actorID, postID)
				}
				return nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing post",
			deleteFunc: func(ctx context.Context, actorID, postID uint) error {
				return domain.ErrPostNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "non-author",
			deleteFunc: func(ctx context.Context, actorID, postID uint) error {
				return authz.ErrForbidden
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "store outage",
			deleteFunc: func(ctx context.Context, actorID, postID uint) error {
				return domain.ErrUnavailable
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, token := newTestRouter(&mockPostUsecase{DeleteFunc: tt.deleteFunc})

			req := httptest.NewRequest(http.MethodDelete, "/api/posts/10", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
