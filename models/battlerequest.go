package models

// FightRequestはクライアントからの対戦開始リクエストを表します。
// robot_idは申請者が所有するロボットでなければなりません。
type FightRequest struct {
	Location        string `json:"location" binding:"required"`
	RobotID         uint   `json:"robot_id" binding:"required"`
	OpponentRobotID uint   `json:"opponent_robot_id" binding:"required"`
}
