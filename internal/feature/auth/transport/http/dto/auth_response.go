package dto

import "feed_backend/internal/api"

// AuthResponse は登録・ログイン成功時のレスポンスボディです。
// ユーザーは公開ビューのみを含み、パスワードハッシュは決して含まれません。
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    api.UserView `json:"user"`
}

// MeResponse は/api/auth/meのレスポンスボディです。
type MeResponse struct {
	User api.UserView `json:"user"`
}
