// Package usecase はpostsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	authentity "feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/posts/domain"
	"feed_backend/internal/feature/posts/domain/entity"
	"feed_backend/internal/shared/authz"
	"feed_backend/internal/shared/pagination"
)

// maxContentLength は投稿本文の最大文字数です。
const maxContentLength = 280

// PostRepository は投稿エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PostRepository interface {
	// Create は新しい投稿をストレージに永続化します。
	Create(ctx context.Context, post *entity.Post) error

	// FindByID は指定されたIDの投稿を著者情報つきで取得します。
	// 投稿が存在しない場合、domain.ErrPostNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Delete は投稿を物理削除します（ソフトデリートやトゥームストーンはありません）。
	// 投稿が存在しない場合、domain.ErrPostNotFoundを返します。
	Delete(ctx context.Context, id uint) error

	// ListPage は作成日時の降順で投稿の1ページ分を著者情報つきで取得します。
	// authorIDがnilでない場合、その著者の投稿のみに絞り込みます。
	ListPage(ctx context.Context, authorID *uint, offset, limit int) ([]entity.Post, error)

	// Count は同じ絞り込み条件での投稿総数を返します。
	Count(ctx context.Context, authorID *uint) (int64, error)
}

// PostUsecase は投稿のビジネスロジックを実装します。
type PostUsecase struct {
	posts PostRepository
}

// NewPostUsecase はPostUsecaseの新しいインスタンスを生成します。
func NewPostUsecase(posts PostRepository) *PostUsecase {
	return &PostUsecase{posts: posts}
}

// Create は認証済みユーザーの新しい投稿を永続化します。
// 本文はトリム後に1〜280文字であることを（トランスポート層と独立に）検証します。
// 返される投稿には著者情報が設定済みです。
func (u *PostUsecase) Create(ctx context.Context, author *authentity.User, content string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < 1 || n > maxContentLength {
		return nil, domain.ErrInvalidContent
	}

	post := &entity.Post{
		Content:  content,
		AuthorID: author.ID,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	// 著者は呼び出し元（認証ミドルウェア）が解決済みのため、再取得せずに設定する
	post.Author = *author
	return post, nil
}

// Delete は投稿を削除します。所有者以外による削除はauthz.ErrForbiddenになります。
// 認可チェックはストアへの書き込みより前に必ず行われます。
func (u *PostUsecase) Delete(ctx context.Context, actorID, postID uint) error {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if !authz.CanMutate(actorID, post.AuthorID) {
		return authz.ErrForbidden
	}

	return u.posts.Delete(ctx, postID)
}

// ListFeed は投稿フィードの1ページ分とページング情報を返します。
// authorIDがnilの場合はグローバルフィード、指定時はその著者のフィードです。
// 最終ページを超えたページの要求は空のフィードになり、エラーにはなりません。
func (u *PostUsecase) ListFeed(ctx context.Context, authorID *uint, p pagination.Params) ([]entity.Post, pagination.Result, error) {
	posts, err := u.posts.ListPage(ctx, authorID, p.Offset(), p.Limit)
	if err != nil {
		return nil, pagination.Result{}, err
	}

	total, err := u.posts.Count(ctx, authorID)
	if err != nil {
		return nil, pagination.Result{}, err
	}

	return posts, pagination.NewResult(p, len(posts), total), nil
}
