// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"feed_backend/internal/feature/auth/domain"
	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/auth/usecase"
	usersusecase "feed_backend/internal/feature/users/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const uniqueViolation = "23505"

// userPostgres はUserRepositoryインターフェースのGORM実装です。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがauth側のUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// usersフィーチャー側のUserRepositoryも同じ実装を共有します（同一テーブルのため）。
var _ usersusecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加します。
// メールアドレスの一意制約違反はdomain.ErrUserAlreadyExistsに変換されます。
// 同時登録の競合はこの制約が一意性の正として解決します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrUserAlreadyExists
		}
		return storeErr(err)
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return &u, nil
}

// Update はプロフィールの編集可能フィールドのみを保存します。
// 空文字列への更新（bioのクリア等）も反映するためSelectで対象カラムを明示します。
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).
		Model(u).
		Select("name", "bio", "profile_picture").
		Updates(u).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// List は参加日時の降順でユーザーの1ページ分を取得します。
// 同時刻のユーザーはIDの降順で並び、ページをまたいでも順序が安定します。
// searchを指定すると名前またはメールアドレスの部分一致で絞り込みます。
func (r *userPostgres) List(ctx context.Context, search string, offset, limit int) ([]entity.User, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var users []entity.User
	err := q.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

// Count は同じ絞り込み条件でのユーザー総数を返します。
func (r *userPostgres) Count(ctx context.Context, search string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, storeErr(err)
	}
	return total, nil
}

// isDuplicateKey は一意制約違反かどうかを判定します。
// GORMの翻訳済みエラーとpgxドライバの生エラーの両方を確認します。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// storeErr はコンテキストの期限切れ・キャンセルをリトライ可能なdomain.ErrUnavailableへ変換します。
// キャンセルされたストア呼び出しが空の結果として黙って返ることはありません。
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}
