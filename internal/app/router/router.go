// Package router はアプリケーションのルート定義を提供します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "feed_backend/internal/feature/auth/transport/handler"
	posthandler "feed_backend/internal/feature/posts/transport/handler"
	userhandler "feed_backend/internal/feature/users/transport/handler"
	"feed_backend/internal/platform/http/handler"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/shared/ratelimiter"
)

// NewRouter は全エンドポイントを登録したgin.Engineを生成します。
// verifierとusersは保護ルートのJWT検証・ユーザー解決に使われます。
func NewRouter(
	authHandler *authhandler.AuthHandler,
	postHandler *posthandler.PostHandler,
	userHandler *userhandler.UserHandler,
	verifier jwtmw.TokenVerifier,
	users jwtmw.UserResolver,
) *gin.Engine {
	r := gin.Default()

	// ブラウザクライアント向けCORSと、IP単位のレートリミット（15分100リクエスト）
	r.Use(cors.Default())
	r.Use(ratelimiter.Middleware(ratelimiter.NewIPRateLimiter(100, 15*time.Minute)))

	api := r.Group("/api")

	// 認証不要
	// 導通確認用
	api.GET("/health", handler.Health)
	// 新規ユーザー登録（JWT発行）
	api.POST("/auth/register", authHandler.Register)
	// ログイン（JWT発行)
	api.POST("/auth/login", authHandler.Login)
	// フィードとプロフィールは公開
	api.GET("/posts", postHandler.List)
	api.GET("/posts/user/:userId", postHandler.ListByAuthor)
	api.GET("/users", userHandler.List)
	api.GET("/users/:userId", userHandler.Get)

	// 認証必須のルート
	auth := api.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに Bearer JWT が必要になる
	auth.Use(jwtmw.AuthRequired(verifier, users))
	{
		auth.GET("/auth/me", authHandler.Me)
		auth.POST("/posts", postHandler.Create)
		auth.DELETE("/posts/:postId", postHandler.Delete)
		auth.PUT("/users/profile", userHandler.UpdateProfile)
	}

	return r
}
