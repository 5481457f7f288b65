// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "vocab-srs"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultDatabaseDriver = DriverSQLite
	DefaultDatabaseURL    = "file:vocab.db?_foreign_keys=on"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultAppReviewLimit = 0 // 0 は無制限
)

// 対応しているDBドライバ
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
