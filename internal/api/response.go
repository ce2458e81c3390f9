// Package api は全フィーチャー共通のHTTPレスポンス型を定義します。
package api

// ErrorResponse は失敗時の共通レスポンスボディです。
// メッセージはクライアントに表示可能な内容のみを含み、内部情報は含めません。
type ErrorResponse struct {
	Message string `json:"message"`
}

// FieldError はバリデーション失敗のフィールド単位の詳細です。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse はバリデーション失敗時のレスポンスボディです。
type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// MessageResponse は成功時のメッセージのみのレスポンスボディです。
type MessageResponse struct {
	Message string `json:"message"`
}
