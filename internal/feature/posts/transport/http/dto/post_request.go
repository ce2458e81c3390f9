// Package dto はpostsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CreatePostReq は/api/postsエンドポイントのリクエストボディを表します。
// 本文は1〜280文字です。トリム後の再検証はユースケース側でも行われます。
type CreatePostReq struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}
