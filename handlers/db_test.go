package handlers

import (
	"testing"
	"time"

	"robotserver/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// テスト用のインメモリDBを作成します。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Robot{},
		&models.UserRobot{},
		&models.Battle{},
		&models.Challenger{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func seedRobot(t *testing.T, db *gorm.DB, user *models.User, name string, power, speed, weight float64) models.Robot {
	t.Helper()

	robot := models.Robot{Name: name, Power: power, Speed: speed, Weight: weight}
	if err := db.Create(&robot).Error; err != nil {
		t.Fatalf("failed to create robot %s: %v", name, err)
	}
	if err := db.Create(&models.UserRobot{UserID: user.ID, RobotID: robot.ID}).Error; err != nil {
		t.Fatalf("failed to create ownership for %s: %v", name, err)
	}
	return robot
}

func seedChallenger(t *testing.T, db *gorm.DB, robotID uint, isInitiator bool, createdAt time.Time) {
	t.Helper()

	challenger := models.Challenger{
		UserID:      1,
		RobotID:     robotID,
		BattleID:    1,
		IsInitiator: isInitiator,
	}
	challenger.CreatedAt = createdAt
	if err := db.Create(&challenger).Error; err != nil {
		t.Fatalf("failed to create challenger: %v", err)
	}
}
