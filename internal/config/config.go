package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr            string
	ShutdownTimeout     time.Duration
	StaticDir           string
	StaticMenuPath      string
	CartFilePath        string
	AllowedOrigins      []string
	IikoBaseURL         string
	IikoAPILogin        string
	MenuRefreshInterval time.Duration
	TelegramBotToken    string
	TelegramChatID      string
	DisableOnlinePay    bool
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:            envOrDefault("HTTP_ADDR", ":3000"),
		ShutdownTimeout:     envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		StaticDir:           envOrDefault("STATIC_DIR", ""),
		StaticMenuPath:      envOrDefault("STATIC_MENU_PATH", "static-menu.json"),
		CartFilePath:        envOrDefault("CART_FILE_PATH", ""),
		AllowedOrigins:      envList("ALLOWED_ORIGINS"),
		IikoBaseURL:         envOrDefault("IIKO_BASE_URL", "https://api-ru.iiko.services"),
		IikoAPILogin:        envOrDefault("IIKO_API_LOGIN", ""),
		MenuRefreshInterval: envDuration("MENU_REFRESH_INTERVAL_SECONDS", 5*time.Minute),
		TelegramBotToken:    envOrDefault("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:      envOrDefault("TELEGRAM_CHAT_ID", ""),
		DisableOnlinePay:    envBool("DISABLE_ONLINE_PAYMENT"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
