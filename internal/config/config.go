package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	JWTAlgorithm      string
	AccessTokenExpiry time.Duration
	SlackBotToken     string
	SlackChannelID    string
	SlackTimeout      time.Duration
	FrontendOrigin    string
	SwaggerHost       string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/cfptracker?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("SECRET_KEY", "change-me"),
		JWTAlgorithm:      getEnv("ALGORITHM", "HS256"),
		AccessTokenExpiry: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		SlackBotToken:     os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannelID:    os.Getenv("SLACK_CHANNEL_ID"),
		SlackTimeout:      time.Duration(getEnvInt("SLACK_TIMEOUT_SECONDS", 10)) * time.Second,
		FrontendOrigin:    getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
