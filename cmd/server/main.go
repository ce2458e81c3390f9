package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"feed_backend/internal/app/di"
	"feed_backend/internal/app/router"
	authadapters "feed_backend/internal/feature/auth/adapters"
	authhandler "feed_backend/internal/feature/auth/transport/handler"
	authusecase "feed_backend/internal/feature/auth/usecase"
	postshandler "feed_backend/internal/feature/posts/transport/handler"
	postsusecase "feed_backend/internal/feature/posts/usecase"
	usershandler "feed_backend/internal/feature/users/transport/handler"
	usersusecase "feed_backend/internal/feature/users/usecase"
	"feed_backend/internal/platform/db"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/platform/password"
	platformredis "feed_backend/internal/platform/redis"
)

func main() {
	// .envがあれば読み込む（本番は環境変数で直接設定）
	_ = godotenv.Load()

	// トークン署名鍵は必須
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set. Set a strong secret before starting the server.")
	}

	tokenTTL := jwtmw.DefaultTokenTTL
	if h := os.Getenv("TOKEN_TTL_HOURS"); h != "" {
		hours, err := strconv.Atoi(h)
		if err != nil || hours <= 0 {
			log.Fatalf("invalid TOKEN_TTL_HOURS: %q", h)
		}
		tokenTTL = time.Duration(hours) * time.Hour
	}

	// db
	gormDB := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(gormDB)
	postRepo := di.NewPostRepository(rdb, gormDB)

	// プラットフォームサービス
	hasher := password.NewHasher(0)
	tokens := jwtmw.NewGenerator(secret, tokenTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens)
	postUC := postsusecase.NewPostUsecase(postRepo)
	userUC := usersusecase.NewUserUsecase(userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	postH := postshandler.NewPostHandler(postUC)
	userH := usershandler.NewUserHandler(userUC)

	// ルータ生成
	r := router.NewRouter(authH, postH, userH, tokens, userRepo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
