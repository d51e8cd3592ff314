package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDataFile — файл каталога, если LIBRARY_FILE не задан.
const DefaultDataFile = "library.txt"

// Config — структура, хранящая все настройки приложения.
type Config struct {
	DataFile      string
	LogLevel      string
	TelegramToken string
	TelegramProxy string
	AllowedUsers  []int64
}

// Load считывает .env файл и заполняет структуру Config.
func Load() (*Config, error) {
	// Если .env нет, ничего страшного: переменные могут прийти из окружения.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Инфо: файл .env не найден, ищем переменные в окружении OS")
	}

	allowed, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USERS"))
	if err != nil {
		return nil, err
	}

	return &Config{
		DataFile:      resolvePath(withDefault(os.Getenv("LIBRARY_FILE"), DefaultDataFile)),
		LogLevel:      withDefault(os.Getenv("LOG_LEVEL"), "warn"),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramProxy: strings.TrimSpace(os.Getenv("TELEGRAM_PROXY")),
		AllowedUsers:  allowed,
	}, nil
}

// RequireBot проверяет настройки, без которых бот не запустится.
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("переменная TELEGRAM_TOKEN не задана")
	}
	return nil
}

func withDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// resolvePath делает путь абсолютным относительно рабочей директории.
func resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Clean(filepath.Join(cwd, p))
	}

	return p
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный id в TELEGRAM_ALLOWED_USERS: %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
