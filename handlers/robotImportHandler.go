package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"robotserver/models"
	"robotserver/spreadsheets"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// アップロードできるファイルサイズの上限（1MB）
const maxSpreadsheetSize = 1 << 20

// RobotImport はスプレッドシートからロボットを一括登録するハンドラです。
// 全行の検証に成功した場合のみ登録し、登録は1つのトランザクションで行います。
func RobotImport(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID := c.GetUint("userID")

	fileHeader, err := c.FormFile("robot_spreadsheet")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, "robot_spreadsheet file is required"))
		return
	}
	if fileHeader.Size > maxSpreadsheetSize {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Spreadsheet file is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Robot Spreadsheet Data Extraction encountered an Unexpected Error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot Spreadsheet Data Extraction encountered an Unexpected Error"))
		return
	}
	defer file.Close()

	rows, err := spreadsheets.ReadRobotRows(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, spreadsheets.ErrMultipleSheets) {
			c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Spreadsheet contains more than one sheet, please combine in one sheet"))
			return
		}
		logger.Error("Robot Spreadsheet Data Extraction encountered an Unexpected Error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, err.Error()))
		return
	}

	// 登録前に全行を検証する
	if message, ok := validateImportRows(db, rows, logger); !ok {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, message))
		return
	}

	// 全ロボットと所有関係を同一トランザクションで作成
	robots := make([]models.Robot, 0, len(rows))
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			robot := models.Robot{
				Name:   row.Name,
				Power:  row.Power,
				Speed:  row.Speed,
				Weight: row.Weight,
			}
			if err := tx.Create(&robot).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.UserRobot{UserID: userID, RobotID: robot.ID}).Error; err != nil {
				return err
			}
			robots = append(robots, robot)
		}
		return nil
	})
	if err != nil {
		logger.Error("Robot Spreadsheet Creation encountered an Unexpected Error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot Spreadsheet Creation encountered an Unexpected Error"))
		return
	}

	items := make([]gin.H, 0, len(robots))
	for _, robot := range robots {
		items = append(items, transformRobot(robot))
	}
	c.JSON(http.StatusCreated, gin.H{"data": items})
}

// validateImportRows は一括登録の全行を検証します。
// 1件でも不正な行があれば登録は行いません。
func validateImportRows(db *gorm.DB, rows []spreadsheets.RobotRow, logger *zap.Logger) (string, bool) {
	if len(rows) == 0 {
		return "Spreadsheet has no robot rows", false
	}

	seen := map[string]bool{}
	for i, row := range rows {
		rowNumber := i + 2 // ヘッダー行の次から
		if row.Name == "" {
			return fmt.Sprintf("Row %d: name is required", rowNumber), false
		}
		if row.Power < 1 || row.Speed < 1 || row.Weight < 1 {
			return fmt.Sprintf("Row %d: power, speed and weight must be 1 or greater", rowNumber), false
		}
		if seen[row.Name] {
			return fmt.Sprintf("Row %d: duplicate robot name %q in spreadsheet", rowNumber, row.Name), false
		}
		seen[row.Name] = true

		var count int64
		if err := db.Model(&models.Robot{}).Where("name = ?", row.Name).Count(&count).Error; err != nil {
			logger.Error("Robot Spreadsheet validation encountered an unexpected error", zap.Error(err))
			return "Robot Spreadsheet Creation encountered an Unexpected Error", false
		}
		if count > 0 {
			return fmt.Sprintf("Row %d: robot name %q has already been taken", rowNumber, row.Name), false
		}
	}

	return "", true
}
