// Package cache はリポジトリインターフェースのキャッシュ実装を提供します。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"feed_backend/internal/feature/posts/domain/entity"
	"feed_backend/internal/feature/posts/usecase"
)

// CachingPostRepository はPostRepositoryをRedisキャッシュでデコレートします。
// デコレーターパターンにより、下位リポジトリを変更せずに透過的にキャッシュを追加します。
// フィードの1ページ分と総数をキャッシュし、投稿の作成・削除時に無効化します。
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingPostRepositoryがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository はPostRepositoryをRedisキャッシュでデコレートします。
// ttlが0以下の場合は1分、namespaceが空の場合は"posts"をデフォルトとして使用します。
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create は投稿を永続化し、影響を受けるフィードのキャッシュを無効化します。
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Create(ctx, post); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	// 新規投稿はグローバルフィードと著者フィードの両方に現れます。
	// ベストエフォート：キャッシュ削除の失敗で書き込みを失敗させません。
	_ = c.deleteByPattern(ctx, c.feedKeyPrefix(nil)+"*")
	_ = c.deleteByPattern(ctx, c.feedKeyPrefix(&post.AuthorID)+"*")
	_ = c.rdb.Del(ctx, c.countKey(nil), c.countKey(&post.AuthorID)).Err()
	return nil
}

// FindByID は投稿を取得します。単発の主キー参照はキャッシュしません。
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	return c.inner.FindByID(ctx, id)
}

// Delete は投稿を削除し、フィードキャッシュをすべて無効化します。
// IDだけでは著者が特定できないため、名前空間全体を無効化します。
func (c *CachingPostRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
	return nil
}

// ListPage は投稿の1ページ分を取得します。キャッシュを先に確認し、
// ミスした場合はデータベースへフォールバックして結果を保存します。
func (c *CachingPostRepository) ListPage(ctx context.Context, authorID *uint, offset, limit int) ([]entity.Post, error) {
	if c.rdb == nil {
		return c.inner.ListPage(ctx, authorID, offset, limit)
	}

	key := c.feedKey(authorID, offset, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Post
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたキャッシュエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.ListPage(ctx, authorID, offset, limit)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Count は同じ絞り込み条件での投稿総数を返します。総数もTTLつきでキャッシュします。
func (c *CachingPostRepository) Count(ctx context.Context, authorID *uint) (int64, error) {
	if c.rdb == nil {
		return c.inner.Count(ctx, authorID)
	}

	key := c.countKey(authorID)

	if s, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	total, err := c.inner.Count(ctx, authorID)
	if err != nil {
		return 0, err
	}

	_ = c.rdb.Set(ctx, key, strconv.FormatInt(total, 10), c.ttl).Err()
	return total, nil
}

// feedKey は特定のページ取得に対するキャッシュキーを生成します。
func (c *CachingPostRepository) feedKey(authorID *uint, offset, limit int) string {
	return fmt.Sprintf("%s%d:%d", c.feedKeyPrefix(authorID), offset, limit)
}

// feedKeyPrefix は関連するキャッシュエントリを無効化するためのプレフィックスを生成します。
func (c *CachingPostRepository) feedKeyPrefix(authorID *uint) string {
	return fmt.Sprintf("%s:feed:%s:", c.namespace, scope(authorID))
}

// countKey は総数キャッシュのキーを生成します。
func (c *CachingPostRepository) countKey(authorID *uint) string {
	return fmt.Sprintf("%s:count:%s", c.namespace, scope(authorID))
}

// scope は著者フィルタをキー要素に変換します。
func scope(authorID *uint) string {
	if authorID == nil {
		return "all"
	}
	return strconv.FormatUint(uint64(*authorID), 10)
}

// deleteByPattern はSCANを使ってパターンに一致するキャッシュキーをすべて削除します。
func (c *CachingPostRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
