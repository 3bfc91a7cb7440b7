package auth

import (
	"os"

	"golang.org/x/crypto/bcrypt"
)

// JWTの署名に使用するシークレットキー。本番環境では必ず環境変数で設定します。
var JwtKey = jwtKeyFromEnv()

func jwtKeyFromEnv() []byte {
	if key := os.Getenv("JWT_SECRET_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("your_secret_key")
}

// HashPassword はパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword はハッシュと平文パスワードを照合します。
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
