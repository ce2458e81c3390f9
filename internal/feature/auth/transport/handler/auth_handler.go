// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/auth/domain"
	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/auth/transport/http/dto"
	"feed_backend/internal/feature/auth/usecase"
	jwtmw "feed_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、JWTトークンと作成されたユーザーを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error)
	// Login はユーザーを認証し、成功時にJWTトークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時はフィールド詳細つきで400を返却
// - メール重複時は409を返却
// - 成功時はトークンと公開ユーザービューつきで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			slog.Warn("register rejected: duplicate email", "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Message: "user already exists with this email"})
		case errors.Is(err, domain.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "registration failed"})
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "user registered successfully",
		Token:   token,
		User:    api.NewUserView(user),
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（メール未登録とパスワード不一致は同一メッセージ）
// - 認証成功時はJWTトークンつきで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewValidationErrorResponse(err))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// ユーザー列挙攻撃を防止するため、未登録メールと誤パスワードを区別しない
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid email or password"})
		case errors.Is(err, domain.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
		default:
			slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "login failed"})
		}
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    api.NewUserView(user),
	})
}

// Me は認証済みユーザー自身の情報を返します。
// ユーザーは認証ミドルウェアが解決済みのため、ストアへの追加アクセスは行いません。
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		// ミドルウェア未適用のルートに誤って配線された場合のみ到達する
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "missing bearer token"})
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{User: api.NewUserView(user)})
}
