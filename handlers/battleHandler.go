package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"robotserver/battles"
	"robotserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FightHandler は対戦申請を処理するハンドラです。
// 前提条件を満たした場合のみBattleとChallenger2件が作成されます。
func FightHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger, config models.Config) {
	userID := c.GetUint("userID")

	var request models.FightRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Fight request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	limits := battles.Limits{
		MaxRobotChallenges:         config.MaxRobotChallenges,
		MaxOpponentRobotChallenges: config.MaxOpponentRobotChallenges,
	}

	battle, err := battles.Fight(db, logger, limits, request.RobotID, request.OpponentRobotID, userID, request.Location)
	if err != nil {
		switch {
		case errors.Is(err, battles.ErrSameRobot):
			c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Robot cannot fight itself"))
		case errors.Is(err, battles.ErrRobotNotFound):
			c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Robot selected does not exist"))
		case errors.Is(err, battles.ErrNotOwned):
			c.JSON(http.StatusUnprocessableEntity, errorResponse(http.StatusUnprocessableEntity, "Robot selected does not belong to you"))
		case errors.Is(err, battles.ErrInitiatorLimit):
			message := fmt.Sprintf("Robot has fought %d battles already. Please try tomorrow!", config.MaxRobotChallenges)
			c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, message))
		case errors.Is(err, battles.ErrOpponentLimit):
			c.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, "Opponent Robot has already been challenged for today!"))
		default:
			// 書き込みはロールバック済みのため、リクエスト全体の再試行が可能
			c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Robot Fight encountered an Unexpected Error"))
		}
		return
	}

	c.JSON(http.StatusOK, transformBattle(*battle))
}

// ResultsHandler は対戦結果の一覧を返すハンドラです。
func ResultsHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger, config models.Config) {
	page, limit := paginationParams(c, config.PaginationLimit)

	results, err := battles.Results(db, page, limit)
	if err != nil {
		logger.Error("Battle Results encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Battle Results encountered an Unexpected Error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

// LeaderboardHandler はロボットのランキングを返すハンドラです。
func LeaderboardHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger, config models.Config) {
	page, limit := paginationParams(c, config.PaginationLimit)

	leaderboard, err := battles.Leaderboard(db, page, limit)
	if err != nil {
		logger.Error("Battle Leaderboard encountered an unexpected error", zap.Error(err))
		c.JSON(http.StatusConflict, errorResponse(http.StatusConflict, "Battle Leaderboard encountered an Unexpected Error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": leaderboard})
}
