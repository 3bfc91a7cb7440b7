package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"robotserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 指定ユーザーが所有するロボットを検索します。見つからない場合はgorm.ErrRecordNotFoundを返します。
func findRobotByIDAndUserID(db *gorm.DB, robotID uint, userID uint) (models.Robot, error) {
	var robot models.Robot
	err := db.Joins("JOIN users_robots ON users_robots.robot_id = robots.id").
		Where("robots.id = ? AND users_robots.user_id = ?", robotID, userID).
		First(&robot).Error
	return robot, err
}

// RobotIndex はロボット一覧を所有者付きで返すハンドラです。
func RobotIndex(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var robots []models.Robot
	if err := db.Preload("Users").Order("id").Find(&robots).Error; err != nil {
		logger.Error("Getting Robots encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Getting Robots encountered an Unexpected Error"))
		return
	}

	items := make([]gin.H, 0, len(robots))
	for _, robot := range robots {
		items = append(items, transformRobotWithUser(robot))
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// RobotShow は単一のロボットを返すハンドラです。
func RobotShow(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, "Invalid robot id"))
		return
	}

	var robot models.Robot
	if err := db.Preload("Users").First(&robot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(http.StatusNotFound, "Robot not found"))
			return
		}
		logger.Error("Showing Robot encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Showing Robot encountered an Unexpected Error"))
		return
	}

	c.JSON(http.StatusOK, transformRobotWithUser(robot))
}

// RobotCreate はロボットを登録し、申請者を所有者として紐付けるハンドラです。
func RobotCreate(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID := c.GetUint("userID")

	var request models.RobotCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Robot create request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	// ロボット名の重複チェック
	var count int64
	if err := db.Model(&models.Robot{}).Where("name = ?", request.Name).Count(&count).Error; err != nil {
		logger.Error("Robot creation encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot creation encountered an Unexpected Error"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Robot name has already been taken"))
		return
	}

	robot := models.Robot{
		Name:   request.Name,
		Power:  request.Power,
		Speed:  request.Speed,
		Weight: request.Weight,
	}

	// ロボットと所有関係を同一トランザクションで作成
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&robot).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRobot{UserID: userID, RobotID: robot.ID}).Error
	})
	if err != nil {
		logger.Error("Robot creation encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot creation encountered an Unexpected Error"))
		return
	}

	c.JSON(http.StatusCreated, transformRobot(robot))
}

// RobotUpdate は所有するロボットの属性を変更するハンドラです。
// 攻撃力は属性から毎回計算されるため、更新後の再計算は不要です。
func RobotUpdate(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID := c.GetUint("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, "Invalid robot id"))
		return
	}

	var request models.RobotUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	robot, err := findRobotByIDAndUserID(db, uint(id), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(http.StatusNotFound, "Robot not found"))
			return
		}
		logger.Error("Robot update encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot update encountered an Unexpected Error"))
		return
	}

	// 指定された属性のみ更新
	updates := map[string]interface{}{}
	if request.Power != nil {
		updates["power"] = *request.Power
	}
	if request.Speed != nil {
		updates["speed"] = *request.Speed
	}
	if request.Weight != nil {
		updates["weight"] = *request.Weight
	}

	if len(updates) > 0 {
		if err := db.Model(&robot).Updates(updates).Error; err != nil {
			logger.Error("Robot update encountered an unexpected error", zap.Error(err))
			c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot update encountered an Unexpected Error"))
			return
		}
	}

	c.JSON(http.StatusOK, transformRobot(robot))
}

// RobotDelete は所有するロボットと所有関係を削除するハンドラです。
func RobotDelete(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID := c.GetUint("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, "Invalid robot id"))
		return
	}

	robot, err := findRobotByIDAndUserID(db, uint(id), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, errorResponse(http.StatusNotFound, "Robot not found"))
			return
		}
		logger.Error("Robot deletion encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot deletion encountered an Unexpected Error"))
		return
	}

	// 所有関係も同一トランザクションで削除
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("robot_id = ?", robot.ID).Delete(&models.UserRobot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&robot).Error
	})
	if err != nil {
		logger.Error("Robot deletion encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot deletion encountered an Unexpected Error"))
		return
	}

	c.Status(http.StatusNoContent)
}
