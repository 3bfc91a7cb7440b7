package middlewares

import (
	"time"

	"robotserver/auth"
	"robotserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// トークンの有効期限
const tokenLifetime = 72 * time.Hour

// GenerateToken はログイン済みユーザーのJWTトークンを生成します。
func GenerateToken(user models.User) (string, error) {
	expirationTime := time.Now().Add(tokenLifetime)

	// JWTトークン生成時に内包するデータ
	claims := &models.MyClaims{
		UserID: user.ID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JwtKey)

	return tokenString, err
}
