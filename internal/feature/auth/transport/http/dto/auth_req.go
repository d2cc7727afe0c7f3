// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignupReq は/api/auth/signupエンドポイントのリクエストボディを表します。
// 必須チェックとエラーメッセージの順序はユースケース側で行うため、
// バインディングタグは使用しません。
type SignupReq struct {
	Name            string `json:"name"`
	Alias           string `json:"alias"`
	Email           string `json:"email"`
	DateOfBirth     string `json:"dateOfBirth"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileReq は/api/auth/update-profileエンドポイントのリクエストボディを表します。
type UpdateProfileReq struct {
	Name         string `json:"name"`
	Alias        string `json:"alias"`
	Email        string `json:"email"`
	DateOfBirth  string `json:"dateOfBirth"`
	Address      string `json:"address"`
	ProfilePhoto string `json:"profilePhoto"`
}

// ChangePasswordReq は/api/auth/change-passwordエンドポイントのリクエストボディを表します。
type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
