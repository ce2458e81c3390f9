// Package handler はpostsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	authentity "feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/posts/domain"
	"feed_backend/internal/feature/posts/domain/entity"
	"feed_backend/internal/feature/posts/transport/http/dto"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/shared/authz"
	"feed_backend/internal/shared/pagination"
)

// PostUsecase は投稿操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PostUsecase interface {
	// Create は認証済みユーザーの新しい投稿を永続化します。
	Create(ctx context.Context, author *authentity.User, content string) (*entity.Post, error)
	// Delete は投稿を削除します。所有者以外はauthz.ErrForbiddenになります。
	Delete(ctx context.Context, actorID, postID uint) error
	// ListFeed は投稿フィードの1ページ分とページング情報を返します。
	ListFeed(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error)
}

// PostHandler は投稿操作のHTTPリクエストを処理します。
type PostHandler struct {
	posts PostUsecase
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
func NewPostHandler(posts PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// List はグローバルフィードを返すAPIエンドポイントを処理します。
//
// エンドポイント例:
// GET /api/posts?page=2&limit=10
func (h *PostHandler) List(c *gin.Context) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	h.renderFeed(c, nil, params)
}

// ListByAuthor は指定ユーザーの投稿フィードを返すAPIエンドポイントを処理します。
//
// エンドポイント例:
// GET /api/posts/user/42?page=1&limit=10
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	authorID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user id"})
		return
	}

	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	h.renderFeed(c, &authorID, params)
}

// renderFeed はフィード取得の共通処理です。
func (h *PostHandler) renderFeed(c *gin.Context, authorID *uint, params pagination.Params) {
	posts, res, err := h.posts.ListFeed(c.Request.Context(), authorID, params)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
			return
		}
		slog.Error("feed fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPostListResponse(posts, res))
}

// Create は投稿作成APIエンドポイントを処理します。認証必須です。
// - バリデーションエラー時はフィールド詳細つきで400を返却
// - 成功時は著者情報つきの投稿で201を返却
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "missing bearer token"})
		return
	}

	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create post validation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}

	post, err := h.posts.Create(c.Request.Context(), user, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidContent):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: domain.ErrInvalidContent.Error()})
		case errors.Is(err, domain.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
		default:
			slog.Error("create post failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to create post"})
		}
		return
	}

	slog.Info("post created", "post_id", post.ID, "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.CreatePostResponse{
		Message: "post created successfully",
		Post:    dto.NewPostView(post),
	})
}

// Delete は投稿削除APIエンドポイントを処理します。認証必須です。
// - 投稿が存在しない場合は404を返却
// - 所有者以外による削除は403を返却
// - 成功時は200を返却
func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "missing bearer token"})
		return
	}

	postID, err := parseID(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid post id"})
		return
	}

	if err := h.posts.Delete(c.Request.Context(), user.ID, postID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "post not found"})
		case errors.Is(err, authz.ErrForbidden):
			slog.Warn("post delete forbidden", "post_id", postID, "user_id", user.ID)
			c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not authorized to delete this post"})
		case errors.Is(err, domain.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
		default:
			slog.Error("post delete failed", "error", err, "post_id", postID, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete post"})
		}
		return
	}

	slog.Info("post deleted", "post_id", postID, "user_id", user.ID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "post deleted successfully"})
}

// parseID はパスパラメータの数値IDを解析します。
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
