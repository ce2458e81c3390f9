package api

import (
	"time"

	"feed_backend/internal/feature/auth/domain/entity"
)

// UserView はAPIレスポンスに含める公開ユーザー情報です。
// パスワードハッシュを持たないため、エンティティを直接シリアライズする事故を防ぎます。
type UserView struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// NewUserView はUserエンティティから公開ビューを構築します。
func NewUserView(u *entity.User) UserView {
	return UserView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		JoinedAt:       u.CreatedAt,
	}
}
