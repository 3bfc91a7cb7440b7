package utils

import (
	"time"

	"robotserver/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CronCleaner(db *gorm.DB, logger *zap.Logger) {
	c := cron.New()

	// 削除済みロボットを完全に削除するジョブ（"分 時 日 月 曜日"）
	c.AddFunc("0 3 * * *", func() {
		logger.Info("削除済みロボットの完全削除を開始")
		// 削除から30日以上経過したロボットのみ対象
		result := db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", time.Now().Add(-30*24*time.Hour)).
			Delete(&models.Robot{})
		if result.Error != nil {
			logger.Error("削除済みロボットの完全削除に失敗しました", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			logger.Info("削除済みロボットの完全削除完了", zap.Int("robots_deleted", int(result.RowsAffected)))
		}
	})

	// 前日の対戦数をログに出力するジョブ（毎日実行）
	c.AddFunc("@daily", func() {
		end := time.Now()
		start := end.Add(-24 * time.Hour)

		var battleCount int64
		err := db.Model(&models.Battle{}).
			Where("created_at BETWEEN ? AND ?", start, end).
			Count(&battleCount).Error
		if err != nil {
			logger.Error("対戦数の集計に失敗しました", zap.Error(err))
			return
		}
		logger.Info("daily battle summary", zap.Int64("battles", battleCount))
	})

	c.Start()
}
