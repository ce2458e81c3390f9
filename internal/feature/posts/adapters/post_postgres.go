// Package adapters はpostsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"feed_backend/internal/feature/posts/domain"
	"feed_backend/internal/feature/posts/domain/entity"
	"feed_backend/internal/feature/posts/usecase"
)

// postPostgres はPostRepositoryインターフェースのGORM実装です。
type postPostgres struct {
	db *gorm.DB
}

// postPostgresがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*postPostgres)(nil)

// NewPostPostgres は指定されたgorm.DB接続でpostPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewPostPostgres(db *gorm.DB) *postPostgres {
	return &postPostgres{db: db}
}

// Create は投稿をデータベースに追加します。
func (r *postPostgres) Create(ctx context.Context, p *entity.Post) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// FindByID はIDで投稿を著者情報つきで取得します。
// 投稿が存在しない場合、domain.ErrPostNotFoundを返します。
func (r *postPostgres) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var p entity.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr(err)
	}
	return &p, nil
}

// Delete は投稿を物理削除します。対象が存在しない場合、domain.ErrPostNotFoundを返します。
func (r *postPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Post{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// ListPage は作成日時の降順で投稿の1ページ分を取得します。
// 同時刻の投稿はIDの降順で並び、ページをまたいでも順序が安定します。
// 著者はPreloadで一括取得されるため、追加クエリはページあたり1回です（投稿あたりではなく）。
func (r *postPostgres) ListPage(ctx context.Context, authorID *uint, offset, limit int) ([]entity.Post, error) {
	q := r.db.WithContext(ctx).Model(&entity.Post{})
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}

	var posts []entity.Post
	err := q.Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

// Count は同じ絞り込み条件での投稿総数を返します。
func (r *postPostgres) Count(ctx context.Context, authorID *uint) (int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Post{})
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, storeErr(err)
	}
	return total, nil
}

// storeErr はコンテキストの期限切れ・キャンセルをリトライ可能なdomain.ErrUnavailableへ変換します。
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}
