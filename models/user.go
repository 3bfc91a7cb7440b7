package models

import (
	"gorm.io/gorm"
)

// User モデルの定義
type User struct {
	gorm.Model
	Name         string  `gorm:"not null"`
	Email        string  `gorm:"unique;not null"`
	PasswordHash string  `gorm:"not null"`
	Robots       []Robot `gorm:"many2many:users_robots"` // 所有するロボット
}
