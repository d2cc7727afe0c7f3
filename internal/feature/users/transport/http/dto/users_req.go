// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// UpdateUserReq は/api/users/:idエンドポイントのリクエストボディを表します。
type UpdateUserReq struct {
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}
