package handlers

import (
	"robotserver/models"

	"github.com/gin-gonic/gin"
)

// レスポンスのJSON表現を組み立てるヘルパー群。

func errorResponse(httpCode int, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"http_code": httpCode,
			"message":   message,
		},
	}
}

func transformUser(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

func transformRobot(robot models.Robot) gin.H {
	return gin.H{
		"id":         robot.ID,
		"name":       robot.Name,
		"weight":     robot.Weight,
		"power":      robot.Power,
		"speed":      robot.Speed,
		"created_at": robot.CreatedAt,
		"updated_at": robot.UpdatedAt,
	}
}

// transformRobotWithUser は所有者付きのロボット表現を返します。
func transformRobotWithUser(robot models.Robot) gin.H {
	item := transformRobot(robot)
	if len(robot.Users) > 0 {
		item["user"] = transformUser(robot.Users[0])
	}
	return item
}

func transformChallenger(challenger models.Challenger) gin.H {
	return gin.H{
		"id":            challenger.ID,
		"robot_id":      challenger.RobotID,
		"user_id":       challenger.UserID,
		"battle_id":     challenger.BattleID,
		"is_victorious": challenger.IsVictorious,
		"is_initiator":  challenger.IsInitiator,
		"created_at":    challenger.CreatedAt,
	}
}

func transformBattle(battle models.Battle) gin.H {
	challengers := make([]gin.H, 0, len(battle.Challengers))
	for _, challenger := range battle.Challengers {
		challengers = append(challengers, transformChallenger(challenger))
	}
	return gin.H{
		"id":          battle.ID,
		"location":    battle.Location,
		"challengers": challengers,
		"created_at":  battle.CreatedAt,
	}
}
