package models

import (
	"time"

	"gorm.io/gorm"
)

// Robot モデルの定義
type Robot struct {
	gorm.Model
	Name   string  `gorm:"unique;not null"` // ロボット名
	Power  float64 `gorm:"not null"`
	Speed  float64 `gorm:"not null"`
	Weight float64 `gorm:"not null"`
	Users  []User  `gorm:"many2many:users_robots"` // 所有者（運用上は常に1人）
}

// AttackPoints はロボットの攻撃力を返します。
// 3つの属性から毎回計算し、キャッシュは持ちません。
func (r *Robot) AttackPoints() float64 {
	return r.Power + r.Speed + r.Weight
}

// 所有関係は別テーブルで管理（users_robots）
type UserRobot struct {
	UserID    uint `gorm:"primaryKey"`
	RobotID   uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserRobot) TableName() string {
	return "users_robots"
}
