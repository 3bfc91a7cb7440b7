package battles

import (
	"time"

	"robotserver/models"

	"gorm.io/gorm"
)

// RobotSummary は対戦結果に含めるロボットの表示項目です。
type RobotSummary struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Power  float64 `json:"power"`
	Speed  float64 `json:"speed"`
	Weight float64 `json:"weight"`
}

// BattleResult は1対戦分の結果を表します。
type BattleResult struct {
	ID            uint         `json:"id"`
	Location      string       `json:"location"`
	WinningRobot  RobotSummary `json:"winning_robot"`
	DefeatedRobot RobotSummary `json:"defeated_robot"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Results は対戦結果の一覧を新しい順（battle id降順）に返します。
func Results(db *gorm.DB, page, limit int) ([]BattleResult, error) {
	if page < 1 {
		page = 1
	}

	var battles []models.Battle
	// 削除済みロボットの対戦履歴も表示対象に含める
	err := db.Preload("Challengers").
		Preload("Challengers.Robot", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}

	results := make([]BattleResult, 0, len(battles))
	for _, battle := range battles {
		result := BattleResult{
			ID:        battle.ID,
			Location:  battle.Location,
			CreatedAt: battle.CreatedAt,
		}
		for _, challenger := range battle.Challengers {
			summary := RobotSummary{
				ID:     challenger.Robot.ID,
				Name:   challenger.Robot.Name,
				Power:  challenger.Robot.Power,
				Speed:  challenger.Robot.Speed,
				Weight: challenger.Robot.Weight,
			}
			if challenger.IsVictorious {
				result.WinningRobot = summary
			} else {
				result.DefeatedRobot = summary
			}
		}
		results = append(results, result)
	}

	return results, nil
}
