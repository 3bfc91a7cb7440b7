package models

// RegisterRequest はクライアントからのユーザー登録リクエストを表します。
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest はクライアントからのログインリクエストを表します。
// 認証に成功するとJWTトークンとセッションIDが発行されます。
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
