package handlers

import (
	"errors"
	"net/http"

	"robotserver/auth"
	"robotserver/database"
	"robotserver/middlewares"
	"robotserver/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Register は新規ユーザーを登録するハンドラです。
func Register(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var request models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Register request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	// メールアドレスの重複チェック
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", request.Email).Count(&count).Error; err != nil {
		logger.Error("Register encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Registering User Encountered an Unexpected Error"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Email has already been taken"))
		return
	}

	hash, err := auth.HashPassword(request.Password)
	if err != nil {
		logger.Error("Password hashing error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Registering User Encountered an Unexpected Error"))
		return
	}

	user := models.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		logger.Error("Register encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Registering User Encountered an Unexpected Error"))
		return
	}

	c.JSON(http.StatusCreated, transformUser(user))
}

// Login は認証を行い、JWTトークンとセッションIDを発行するハンドラです。
func Login(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Login request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	var user models.User
	if err := db.Where("email = ?", request.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Login encountered an unexpected error", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, request.Password) {
		logger.Warn("認証失敗", zap.String("email", request.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	token, err := middlewares.GenerateToken(user)
	if err != nil {
		logger.Error("Token generation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse(http.StatusInternalServerError, "Failed to generate token"))
		return
	}

	// セッションIDを発行してRedisに保存
	sessionID, err := database.GenerateAndStoreSessionID(c.Request.Context(), user.ID, rdb, logger)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(http.StatusInternalServerError, "Failed to create session"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "bearer",
		"session_id": sessionID,
	})
}

// Logout はセッションを破棄するハンドラです。
// セッションが期限切れでもログアウトできるよう、トークンの解析のみ行います。
func Logout(c *gin.Context, rdb *redis.Client, logger *zap.Logger) {
	userID, err := middlewares.GetUserIDFromToken(c, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	sessionID := c.GetHeader("SessionID")
	if sessionID != "" {
		if err := database.DeleteSessionID(c.Request.Context(), rdb, sessionID); err != nil {
			logger.Error("Failed to delete session", zap.Error(err), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, errorResponse(http.StatusInternalServerError, "Failed to delete session"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
