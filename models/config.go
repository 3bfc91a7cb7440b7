package models

// Config 構造体はデータベース接続とゲームルールの設定情報を保持します。
type Config struct {
	DBHost     string `json:"db_host"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`

	// 1日あたりの挑戦回数の上限（挑戦する側と挑戦される側で別々に設定）
	MaxRobotChallenges         int `json:"max_robot_challenges"`
	MaxOpponentRobotChallenges int `json:"max_opponent_robot_challenges"`

	// 一覧系エンドポイントの1ページあたりの最大件数
	PaginationLimit int `json:"pagination_limit"`
}
