package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/auth/domain"
	"feed_backend/internal/feature/auth/domain/entity"
)

// contextUserKey is the gin context key holding the authenticated user.
const contextUserKey = "currentUser"

// TokenVerifier verifies a bearer token and returns the embedded user ID.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (Generator).
type TokenVerifier interface {
	ParseToken(tokenStr string) (uint, error)
}

// UserResolver resolves a verified user ID to a live user record so that
// deleted accounts cannot keep using a still-valid token.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that validates the bearer token,
// resolves the identity against the credential store, and stores the user in
// the request context. It is the single authorization gate: downstream
// handlers never re-verify tokens themselves.
func AuthRequired(verifier TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization ヘッダーからBearerトークンを取り出す
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. 署名と有効期限を検証する
		// 失効と不正は区別してクライアントに返すが、署名鍵の情報は一切漏らさない
		userID, err := verifier.ParseToken(tokenStr)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: msg})
			return
		}

		// 3. ユーザーが現在も存在するか確認する
		// トークンが有効でもアカウントが削除済みならアクセスを拒否する
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUnavailable) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "service temporarily unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid token"})
			return
		}

		// 4. 認証済みユーザーをリクエストコンテキストに格納し、後続ハンドラーへ渡す
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired.
// The second return value is false when the route is not behind the middleware.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
