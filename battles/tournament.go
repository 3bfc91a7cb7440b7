package battles

import (
	"errors"

	"robotserver/models"
)

// 出場者がいない場合のエラー（呼び出し側の前提条件違反）
var ErrNoContestants = errors.New("tournament requires at least one contestant")

// HoldTournament はトーナメントの勝者を返します。
// 先頭のロボットを暫定勝者とし、攻撃力が「厳密に」上回る場合のみ入れ替えます。
// 同点の場合は先にリストされた側が勝ち残ります。入力は変更されません。
func HoldTournament(robots []models.Robot) (models.Robot, error) {
	if len(robots) == 0 {
		return models.Robot{}, ErrNoContestants
	}

	reigningRobot := robots[0]
	for _, robot := range robots[1:] {
		if robot.AttackPoints() > reigningRobot.AttackPoints() {
			reigningRobot = robot
		}
	}

	return reigningRobot, nil
}
