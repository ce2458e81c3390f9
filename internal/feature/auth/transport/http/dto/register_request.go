// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/api/auth/registerエンドポイントのリクエストボディを表します。
// Ginのbindingタグでバリデーションします（名前2〜50文字、メール形式、パスワード6文字以上、bio200文字以内）。
type RegisterReq struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Bio      string `json:"bio" binding:"omitempty,max=200"`
}
