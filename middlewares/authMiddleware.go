package middlewares

import (
	"net/http"
	"strings"
	"time"

	"robotserver/auth"
	"robotserver/database"
	"robotserver/models"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// トークン検証とセッション検証を行うミドルウェア
func AuthMiddleware(db *gorm.DB, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if strings.HasPrefix(tokenString, "Bearer ") {
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		}
		sessionID := c.GetHeader("SessionID")

		claims, ok := parseClaims(logger, tokenString)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// Redis上のセッションとトークンのユーザーIDが一致することを確認
		sessionUserID, valid := database.ValidateSessionID(c.Request.Context(), rdb, sessionID, logger)
		if !valid || sessionUserID != claims.UserID {
			logger.Warn("認証失敗", zap.String("sessionID", sessionID), zap.Uint("userID", claims.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		refreshTokenIfNeeded(c, db, logger, claims)

		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// トークンをパースして有効性をチェックする関数
func parseClaims(logger *zap.Logger, tokenString string) (*models.MyClaims, bool) {
	claims := &models.MyClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return auth.JwtKey, nil
	})

	if err != nil || !token.Valid {
		logger.Warn("トークンのパースに失敗", zap.Error(err))
		return nil, false
	}

	return claims, true
}

// トークンの有効期限が1時間未満の場合、新しいトークンをレスポンスヘッダーで返します。
func refreshTokenIfNeeded(c *gin.Context, db *gorm.DB, logger *zap.Logger, claims *models.MyClaims) {
	needUpdate := time.Unix(claims.ExpiresAt, 0).Sub(time.Now()) < time.Hour
	if !needUpdate {
		return
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		logger.Error("Failed to fetch user for token refresh", zap.Error(err))
		return
	}

	newToken, err := GenerateToken(user)
	if err != nil {
		logger.Error("Token generation error", zap.Error(err))
		return
	}

	// 新しいトークンをレスポンスに追加
	c.Header("Authorization", newToken)
}
