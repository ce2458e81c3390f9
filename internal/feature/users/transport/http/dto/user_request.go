// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// UpdateProfileReq は/api/users/profileエンドポイントのリクエストボディを表します。
// ポインタフィールドは部分更新のためのもので、nilは「変更しない」を意味します。
// bioとprofilePictureは空文字列でクリアできます。
type UpdateProfileReq struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=50"`
	Bio            *string `json:"bio" binding:"omitempty,max=200"`
	ProfilePicture *string `json:"profilePicture" binding:"omitempty,url"`
}
