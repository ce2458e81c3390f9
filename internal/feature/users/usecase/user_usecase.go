// Package usecase はusersフィーチャー（プロフィール閲覧・編集、ユーザー一覧）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/shared/pagination"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// 実装はauthフィーチャーのアダプターと共有されます（同じテーブルを扱うため）。
type UserRepository interface {
	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update はプロフィールの編集可能フィールド（名前・bio・プロフィール画像）を保存します。
	Update(ctx context.Context, user *entity.User) error

	// List は参加日時の降順でユーザーの1ページ分を取得します。
	// searchを指定すると名前またはメールアドレスの部分一致で絞り込みます。
	List(ctx context.Context, search string, offset, limit int) ([]entity.User, error)

	// Count は同じ絞り込み条件でのユーザー総数を返します。
	Count(ctx context.Context, search string) (int64, error)
}

// UpdateProfileInput はプロフィール部分更新の入力です。
// nilのフィールドは「変更しない」を意味します。認可チェックは不要です：
// 操作対象は常に認証済みユーザー自身であり、他人のプロフィールを指定する経路が存在しません。
type UpdateProfileInput struct {
	Name           *string
	Bio            *string
	ProfilePicture *string
}

// UserUsecase はユーザープロフィールのビジネスロジックを実装します。
type UserUsecase struct {
	users UserRepository
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// GetByID は公開プロフィール表示用にユーザーを取得します。
func (u *UserUsecase) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateProfile は指定されたフィールドのみを更新する部分更新を行います。
// 名前は空文字列への変更を無視します（表示名は必須のため）。
// bioとプロフィール画像は空文字列でのクリアを許可します。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			user.Name = name
		}
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List はユーザー一覧の1ページ分とページング情報を返します。
// searchは名前またはメールアドレスの部分一致フィルタです。
func (u *UserUsecase) List(ctx context.Context, search string, p pagination.Params) ([]entity.User, pagination.Result, error) {
	users, err := u.users.List(ctx, strings.TrimSpace(search), p.Offset(), p.Limit)
	if err != nil {
		return nil, pagination.Result{}, err
	}

	total, err := u.users.Count(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, pagination.Result{}, err
	}

	return users, pagination.NewResult(p, len(users), total), nil
}
