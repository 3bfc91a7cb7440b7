package battles

import (
	"errors"
	"fmt"
	"time"

	"robotserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Limits は1日あたりの挑戦回数の上限を保持します。設定ファイル由来です。
type Limits struct {
	MaxRobotChallenges         int // 挑戦する側の上限
	MaxOpponentRobotChallenges int // 挑戦される側の上限
}

// 対戦申請の却下理由
var (
	ErrSameRobot      = errors.New("robot cannot fight itself")
	ErrRobotNotFound  = errors.New("robot not found")
	ErrNotOwned       = errors.New("robot selected does not belong to you")
	ErrInitiatorLimit = errors.New("robot has reached its daily battle limit")
	ErrOpponentLimit  = errors.New("opponent robot has already been challenged enough for today")
)

// Fight は対戦を成立させ、BattleとChallenger2件を作成して返します。
// 前提条件は順番にチェックされ、最初に失敗した時点で却下されます。
// 書き込みは全て1つのトランザクション内で行い、部分的なコミットは発生しません。
func Fight(db *gorm.DB, logger *zap.Logger, limits Limits, initiatorRobotID, opponentRobotID, userID uint, location string) (*models.Battle, error) {
	// 1. 同一ロボットのチェック
	if initiatorRobotID == opponentRobotID {
		return nil, ErrSameRobot
	}

	// 2. 挑戦するロボットが申請者の所有であることのチェック
	owned, err := isOwnedBy(db, initiatorRobotID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotOwned
	}

	windowStart, windowEnd := DayWindow(time.Now())

	var battle *models.Battle
	err = db.Transaction(func(tx *gorm.DB) error {
		// 両方のロボット行をid順にロックし、挑戦回数のチェックと
		// Challenger作成がロボットごとに直列化されるようにする。
		// （SQLiteはFOR UPDATE非対応だが、書き込みトランザクション自体が直列化される。）
		query := tx.Preload("Users").Where("id IN ?", []uint{initiatorRobotID, opponentRobotID}).Order("id")
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var robots []models.Robot
		if err := query.Find(&robots).Error; err != nil {
			return err
		}
		if len(robots) != 2 {
			return ErrRobotNotFound
		}

		// 3. 挑戦する側の1日あたりの回数チェック
		admissible, err := IsAdmissible(tx, initiatorRobotID, RoleInitiator, limits.MaxRobotChallenges, windowStart, windowEnd)
		if err != nil {
			return err
		}
		if !admissible {
			return ErrInitiatorLimit
		}

		// 4. 挑戦される側の1日あたりの回数チェック
		admissible, err = IsAdmissible(tx, opponentRobotID, RoleOpponent, limits.MaxOpponentRobotChallenges, windowStart, windowEnd)
		if err != nil {
			return err
		}
		if !admissible {
			return ErrOpponentLimit
		}

		// 挑戦する側を先頭にしてトーナメントを開催（同点の場合は挑戦する側が勝つ）
		contestants := make([]models.Robot, 0, 2)
		for _, id := range []uint{initiatorRobotID, opponentRobotID} {
			for _, robot := range robots {
				if robot.ID == id {
					contestants = append(contestants, robot)
				}
			}
		}
		winner, err := HoldTournament(contestants)
		if err != nil {
			return err
		}

		// BattleとChallenger2件を作成
		newBattle := models.Battle{Location: location}
		if err := tx.Create(&newBattle).Error; err != nil {
			return err
		}

		for _, robot := range contestants {
			if len(robot.Users) == 0 {
				return fmt.Errorf("robot %d has no owner", robot.ID)
			}
			challenger := models.Challenger{
				UserID:       robot.Users[0].ID,
				RobotID:      robot.ID,
				BattleID:     newBattle.ID,
				IsInitiator:  robot.ID == initiatorRobotID,
				IsVictorious: robot.ID == winner.ID,
			}
			if err := tx.Create(&challenger).Error; err != nil {
				return err
			}
			newBattle.Challengers = append(newBattle.Challengers, challenger)
		}

		battle = &newBattle
		return nil
	})
	if err != nil {
		if !isRejection(err) {
			logger.Error("Robot Fight encountered an unexpected error", zap.Error(err))
		}
		return nil, err
	}

	return battle, nil
}

// isOwnedBy はロボットが指定ユーザーの所有かどうかを返します。
func isOwnedBy(db *gorm.DB, robotID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.UserRobot{}).
		Where("robot_id = ? AND user_id = ?", robotID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// isRejection は業務上の却下理由かどうかを返します。
func isRejection(err error) bool {
	return errors.Is(err, ErrSameRobot) ||
		errors.Is(err, ErrRobotNotFound) ||
		errors.Is(err, ErrNotOwned) ||
		errors.Is(err, ErrInitiatorLimit) ||
		errors.Is(err, ErrOpponentLimit)
}
