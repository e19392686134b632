// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"strconv"
	"time"
)

// デフォルトのバックエンド設定ファイルパス
const defaultBackendConfigPath = "/etc/buzzgate/backend.yml"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string

	// Backend
	BackendConfigPath string
	RPCTimeout        time.Duration

	// Rate Limit
	RateLimitGeneral int // 認証済みAPI全般（req/min/account）
	RateLimitSignup  int // アカウント作成（req/min/IP）
}

// Load は環境変数からConfigを読み込む。
// すべてのフィールドにデフォルトがあり、未設定でもエラーにはならない。
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnvString("SERVER_PORT", "8080"),
		BackendConfigPath: getEnvString("BACKEND_CONFIG", defaultBackendConfigPath),
		RPCTimeout:        getEnvDuration("RPC_TIMEOUT", 10*time.Second),
		RateLimitGeneral:  getEnvInt("RATE_LIMIT_GENERAL", 300),
		RateLimitSignup:   getEnvInt("RATE_LIMIT_SIGNUP", 10),
	}
	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
