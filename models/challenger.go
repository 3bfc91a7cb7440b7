package models

import (
	"gorm.io/gorm"
)

// 対戦参加は別テーブルで管理（1つのBattleにつき2件）
type Challenger struct {
	gorm.Model
	UserID       uint  `gorm:"not null"`       // 対戦時点のロボット所有者
	RobotID      uint  `gorm:"not null;index"` // Robotテーブルを参照
	BattleID     uint  `gorm:"not null;index"` // Battleテーブルを参照
	IsInitiator  bool  `gorm:"not null"`       // 挑戦した側ならtrue
	IsVictorious bool  `gorm:"not null"`       // トーナメントの勝者ならtrue
	Robot        Robot `gorm:"foreignKey:RobotID"`
}
