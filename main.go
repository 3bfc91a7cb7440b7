package main

import (
	"time"

	"go.uber.org/zap"

	"robotserver/database"    //PostgreSQLとRedisの初期化
	"robotserver/handlers"    //各HTTPリクエストの処理
	"robotserver/middlewares" //JWTとセッションの検証
	"robotserver/utils"       //ロガーの初期化とCronジョブ(PostgreSQLの定期クリーンナップ)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// 設定ファイルの読み込み
	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
	}

	// 非同期でPostgreSQLとRedisの初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	// 2つの初期化が完了するのを待つ
	<-done
	<-done

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(db, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.1:8080"}, //ここにデプロイサーバーのIPアドレスを設定
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "SessionID"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//各HTTPリクエストのルーティング
	api := router.Group("/api")

	api.POST("/register", func(c *gin.Context) {
		handlers.Register(c, db, logger)
	})
	api.POST("/login", func(c *gin.Context) {
		handlers.Login(c, db, rdb, logger)
	})
	api.POST("/logout", func(c *gin.Context) {
		handlers.Logout(c, rdb, logger)
	})

	// 以下は認証必須のエンドポイント
	authorized := api.Group("")
	authorized.Use(middlewares.AuthMiddleware(db, rdb, logger))

	authorized.GET("/user", func(c *gin.Context) {
		handlers.UserIndex(c, db, logger, config)
	})
	authorized.PATCH("/user/:id", func(c *gin.Context) {
		handlers.UserUpdate(c, db, logger)
	})

	authorized.GET("/robot", func(c *gin.Context) {
		handlers.RobotIndex(c, db, logger)
	})
	authorized.GET("/robot/:id", func(c *gin.Context) {
		handlers.RobotShow(c, db, logger)
	})
	authorized.POST("/robot", func(c *gin.Context) {
		handlers.RobotCreate(c, db, logger)
	})
	authorized.POST("/robot/import", func(c *gin.Context) {
		handlers.RobotImport(c, db, logger)
	})
	authorized.PATCH("/robot/:id", func(c *gin.Context) {
		handlers.RobotUpdate(c, db, logger)
	})
	authorized.DELETE("/robot/:id", func(c *gin.Context) {
		handlers.RobotDelete(c, db, logger)
	})

	authorized.POST("/battle/fight", func(c *gin.Context) {
		handlers.FightHandler(c, db, logger, config)
	})
	authorized.GET("/battle/results", func(c *gin.Context) {
		handlers.ResultsHandler(c, db, logger, config)
	})
	authorized.GET("/battle/leaderboard", func(c *gin.Context) {
		handlers.LeaderboardHandler(c, db, logger, config)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run()

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
