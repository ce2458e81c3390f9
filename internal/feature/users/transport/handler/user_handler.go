// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/auth/domain"
	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/users/transport/http/dto"
	"feed_backend/internal/feature/users/usecase"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/shared/pagination"
)

// UserUsecase はユーザープロフィール操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// GetByID は公開プロフィール表示用にユーザーを取得します。
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	// UpdateProfile は指定されたフィールドのみの部分更新を行います。
	UpdateProfile(ctx context.Context, userID uint, in usecase.UpdateProfileInput) (*entity.User, error)
	// List はユーザー一覧の1ページ分とページング情報を返します。
	List(ctx context.Context, search string, p pagination.Params) ([]entity.User, pagination.Result, error)
}

// UserHandler はユーザープロフィール操作のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Get は公開プロフィール取得APIエンドポイントを処理します。
//
// エンドポイント例:
// GET /api/users/42
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user id"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), uint(userID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		case errors.Is(err, domain.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
		default:
			slog.Error("user fetch failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to fetch user"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.GetUserResponse{User: api.NewUserView(user)})
}

// UpdateProfile はプロフィール部分更新APIエンドポイントを処理します。認証必須です。
// リクエストボディに含まれるフィールドのみ更新されます。
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "missing bearer token"})
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, usecase.UpdateProfileInput{
		Name:           req.Name,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		case errors.Is(err, domain.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
		default:
			slog.Error("profile update failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update profile"})
		}
		return
	}

	slog.Info("profile updated", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.UpdateProfileResponse{
		Message: "profile updated successfully",
		User:    api.NewUserView(updated),
	})
}

// List はユーザー一覧APIエンドポイントを処理します。
// searchクエリで名前またはメールアドレスの部分一致検索ができます。
//
// エンドポイント例:
// GET /api/users?search=tanaka&page=1&limit=10
func (h *UserHandler) List(c *gin.Context) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	users, res, err := h.users.List(c.Request.Context(), c.Query("search"), params)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
			return
		}
		slog.Error("user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(users, res))
}
