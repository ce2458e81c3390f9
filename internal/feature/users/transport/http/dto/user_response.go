package dto

import (
	"feed_backend/internal/api"
	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/shared/pagination"
)

// GetUserResponse は公開プロフィール取得のレスポンスボディです。
type GetUserResponse struct {
	User api.UserView `json:"user"`
}

// UpdateProfileResponse はプロフィール更新成功時のレスポンスボディです。
type UpdateProfileResponse struct {
	Message string       `json:"message"`
	User    api.UserView `json:"user"`
}

// PaginationView はユーザー一覧レスポンスのページング情報です。
type PaginationView struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasMore     bool  `json:"hasMore"`
}

// UserListResponse はユーザー一覧取得のレスポンスボディです。
type UserListResponse struct {
	Users      []api.UserView `json:"users"`
	Pagination PaginationView `json:"pagination"`
}

// NewUserListResponse は1ページ分のユーザーとページング情報からレスポンスを構築します。
func NewUserListResponse(users []entity.User, res pagination.Result) UserListResponse {
	out := make([]api.UserView, 0, len(users))
	for i := range users {
		out = append(out, api.NewUserView(&users[i]))
	}
	return UserListResponse{
		Users: out,
		Pagination: PaginationView{
			CurrentPage: res.CurrentPage,
			TotalPages:  res.TotalPages,
			TotalUsers:  res.TotalItems,
			HasMore:     res.HasMore,
		},
	}
}
