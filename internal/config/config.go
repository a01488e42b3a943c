// Package config reads the portal's settings from the environment.
package config

import (
	"github.com/spf13/viper"

	"github.com/harsach/newsportal/internal/ai"
)

type Config struct {
	Port         string
	DatabaseURL  string
	RedisAddr    string
	GeminiAPIKey string
	GeminiModel  string
	LogLevel     string
	LogFile      string
	AdminMobile  string
}

func Load() Config {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GEMINI_MODEL", ai.DefaultModel)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	return Config{
		Port:         v.GetString("PORT"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		RedisAddr:    v.GetString("REDIS_ADDR"),
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFile:      v.GetString("LOG_FILE"),
		AdminMobile:  v.GetString("ADMIN_MOBILE"),
	}
}
