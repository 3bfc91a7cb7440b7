package battles

import (
	"gorm.io/gorm"
)

// LeaderboardEntry はランキングの1行を表します。
type LeaderboardEntry struct {
	RobotID     uint   `json:"robot_id"`
	Name        string `json:"name"`
	BattleCount int64  `json:"battle_count"`
	WinCount    int64  `json:"win_count"`
	LossCount   int64  `json:"loss_count"`
}

// Leaderboard は対戦数の多い順にロボットのランキングを返します。
// 対戦数が同じ場合は勝利数の多い順、さらに敗北数の多い順に並べます。
func Leaderboard(db *gorm.DB, page, limit int) ([]LeaderboardEntry, error) {
	if page < 1 {
		page = 1
	}

	entries := []LeaderboardEntry{}
	err := db.Table("challengers").
		Select("challengers.robot_id AS robot_id, robots.name AS name, "+
			"COUNT(*) AS battle_count, "+
			"SUM(CASE WHEN challengers.is_victorious THEN 1 ELSE 0 END) AS win_count, "+
			"SUM(CASE WHEN challengers.is_victorious THEN 0 ELSE 1 END) AS loss_count").
		Joins("JOIN robots ON robots.id = challengers.robot_id").
		Where("challengers.deleted_at IS NULL").
		Group("challengers.robot_id, robots.name").
		Order("battle_count DESC, win_count DESC, loss_count DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
