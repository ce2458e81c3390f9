// Package di はアプリケーションコンポーネントを組み立てる依存性注入ファクトリを提供します。
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"feed_backend/internal/feature/posts/adapters"
	"feed_backend/internal/feature/posts/usecase"
	"feed_backend/internal/platform/cache"
)

// feedCacheTTL はフィードキャッシュの有効期間です。
// フィードは書き込みのたびに明示的に無効化されるため、TTLは安全網として短めにしています。
const feedCacheTTL = time.Minute

// NewPostRepository はPostRepositoryの実装を生成します。
// Redisが利用可能な場合はキャッシュつきの実装を返します。
// そうでない場合はPostgreSQLへの直接アクセスにフォールバックします。
func NewPostRepository(rdb *redis.Client, db *gorm.DB) usecase.PostRepository {
	inner := adapters.NewPostPostgres(db)
	if rdb != nil {
		return cache.NewCachingPostRepository(rdb, feedCacheTTL, inner, "posts")
	}
	return inner
}
