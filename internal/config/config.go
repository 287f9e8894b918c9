package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // 設定されていればDSNより優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	SessionSecret string // セッショントークンの署名シークレット

	// AWS系は未設定でも起動する（通知・画像アップロードは定常失敗としてログに出すだけ）
	AWSRegion   string
	SQSQueueURL string
	SNSTopicARN string
	S3Bucket    string
}

// Loadは環境変数から設定を読む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "gamestore"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		AWSRegion:   getenv("AWS_REGION", "eu-west-1"),
		SQSQueueURL: os.Getenv("SQS_QUEUE_URL"),
		SNSTopicARN: os.Getenv("SNS_TOPIC_ARN"),
		S3Bucket:    os.Getenv("S3_BUCKET_NAME"),
	}

	port, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = port

	//必須チェック
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
