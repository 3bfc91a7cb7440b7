package handlers

import (
	"net/http"
	"strconv"

	"robotserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ページ番号と件数をクエリパラメータから取得します。limitは設定値を上限とします。
func paginationParams(c *gin.Context, maxLimit int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(maxLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// UserIndex はユーザー一覧を返すハンドラです。
func UserIndex(c *gin.Context, db *gorm.DB, logger *zap.Logger, config models.Config) {
	page, limit := paginationParams(c, config.PaginationLimit)

	var users []models.User
	if err := db.Order("id").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		logger.Error("Getting users encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Getting users encountered an Unexpected Error"))
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, user := range users {
		items = append(items, transformUser(user))
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// UserUpdate はユーザー自身の名前を変更するハンドラです。
func UserUpdate(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID := c.GetUint("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || uint(id) != userID {
		// 認証済みユーザー以外の更新は許可しない
		c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "User does not match authenticated user"))
		return
	}

	var request struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		logger.Error("Failed to fetch user", zap.Error(err))
		c.JSON(http.StatusNotFound, errorResponse(http.StatusNotFound, "User not found"))
		return
	}

	if err := db.Model(&user).Update("name", request.Name).Error; err != nil {
		logger.Error("User update encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "User update encountered an Unexpected Error"))
		return
	}

	c.JSON(http.StatusOK, transformUser(user))
}
