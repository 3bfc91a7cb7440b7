package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// セッションの有効期限。JWTの有効期限と揃えています。
const sessionTTL = 72 * time.Hour

// ValidateSessionID checks the session ID from Redis and returns the user ID if the session is valid.
func ValidateSessionID(ctx context.Context, rdb *redis.Client, sessionID string, logger *zap.Logger) (uint, bool) {
	if sessionID == "" {
		logger.Error("Session ID is empty")
		return 0, false
	}

	sessionInfoJSON, err := rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		logger.Warn("Failed to retrieve session info", zap.Error(err))
		return 0, false
	}

	var sessionInfo map[string]interface{}
	if err := json.Unmarshal([]byte(sessionInfoJSON), &sessionInfo); err != nil {
		logger.Error("Failed to decode session info", zap.Error(err))
		return 0, false
	}

	userID, ok := sessionInfo["userID"].(float64) // JSONの数値はfloat64としてデコードされます
	if !ok {
		logger.Error("Invalid session info: missing userID")
		return 0, false
	}

	return uint(userID), true
}

// GenerateAndStoreSessionID はログイン成功時にセッションIDを発行してRedisに保存します。
func GenerateAndStoreSessionID(ctx context.Context, userID uint, rdb *redis.Client, logger *zap.Logger) (string, error) {
	sessionID := uuid.New().String()

	// セッション情報をJSON形式でエンコード
	sessionInfo := map[string]interface{}{
		"userID": userID,
		"issued": time.Now().Unix(),
	}
	sessionInfoJSON, err := json.Marshal(sessionInfo)
	if err != nil {
		logger.Error("Error encoding session info", zap.Error(err))
		return "", err
	}

	// セッションIDとセッション情報をRedisに保存
	err = rdb.Set(ctx, "session:"+sessionID, sessionInfoJSON, sessionTTL).Err()
	if err != nil {
		logger.Error("Error storing session info in Redis", zap.Error(err))
		return "", err
	}

	return sessionID, nil
}

// DeleteSessionID はログアウト時にセッションを破棄します。
func DeleteSessionID(ctx context.Context, rdb *redis.Client, sessionID string) error {
	return rdb.Del(ctx, "session:"+sessionID).Err()
}
