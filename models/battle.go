package models

import (
	"gorm.io/gorm"
)

// Battle モデルの定義。作成後は更新・削除されません。
type Battle struct {
	gorm.Model
	Location    string       `gorm:"not null"`            // 対戦場所のラベル
	Challengers []Challenger `gorm:"foreignKey:BattleID"` // 必ず2件
}
