package models

// RobotCreateRequestはクライアントからのロボット登録リクエストを表します。
// 属性は全て必須で、1以上の数値のみ受け付けます。
type RobotCreateRequest struct {
	Name   string  `json:"name" binding:"required"`
	Power  float64 `json:"power" binding:"required,min=1"`
	Speed  float64 `json:"speed" binding:"required,min=1"`
	Weight float64 `json:"weight" binding:"required,min=1"`
}

// RobotUpdateRequestは属性変更リクエストを表します。省略された属性は変更されません。
type RobotUpdateRequest struct {
	Power  *float64 `json:"power" binding:"omitempty,min=1"`
	Speed  *float64 `json:"speed" binding:"omitempty,min=1"`
	Weight *float64 `json:"weight" binding:"omitempty,min=1"`
}
