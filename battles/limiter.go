package battles

import (
	"time"

	"robotserver/models"

	"gorm.io/gorm"
)

// ChallengeRole は挑戦履歴を数える際の立場を表します。
type ChallengeRole int

const (
	RoleEither    ChallengeRole = iota // 立場を問わない
	RoleInitiator                      // 挑戦した側
	RoleOpponent                       // 挑戦された側
)

// DayWindow は指定時刻を含む暦日の開始・終了時刻を返します。
// タイムゾーンは引数の時刻のものをそのまま使用します。
func DayWindow(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	return start, end
}

// CountChallenges は指定期間内（両端を含む）のロボットの挑戦履歴を数えます。
// roleがRoleEither以外の場合はis_initiatorで絞り込みます。読み取り専用です。
func CountChallenges(db *gorm.DB, robotID uint, role ChallengeRole, windowStart, windowEnd time.Time) (int64, error) {
	query := db.Model(&models.Challenger{}).
		Where("robot_id = ?", robotID).
		Where("created_at BETWEEN ? AND ?", windowStart, windowEnd)

	switch role {
	case RoleInitiator:
		query = query.Where("is_initiator = ?", true)
	case RoleOpponent:
		query = query.Where("is_initiator = ?", false)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsAdmissible は挑戦回数が上限未満であればtrueを返します。
func IsAdmissible(db *gorm.DB, robotID uint, role ChallengeRole, maxAllowed int, windowStart, windowEnd time.Time) (bool, error) {
	count, err := CountChallenges(db, robotID, role, windowStart, windowEnd)
	if err != nil {
		return false, err
	}
	return count < int64(maxAllowed), nil
}
