package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	AuthJWTSecret string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer    string        `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTL  time.Duration `mapstructure:"AUTH_TOKEN_TTL"`

	// --- Pinning (Pinata-совместимый API) ---
	// Либо JWT, либо пара key/secret; если не задано ничего —
	// идём без авторизации (деградированный режим, не ошибка).
	PinataJWT       string `mapstructure:"PINATA_JWT"`
	PinataAPIKey    string `mapstructure:"PINATA_API_KEY"`
	PinataAPISecret string `mapstructure:"PINATA_API_SECRET"`
	PinataPinURL    string `mapstructure:"PINATA_PIN_URL"`
	GatewayBase     string `mapstructure:"IPFS_GATEWAY"`

	// Потолок размера файла в байтах (upload и буферизованный fetch).
	MaxFileSize int64 `mapstructure:"MAX_FILE_SIZE"`
}

const (
	DefaultPinURL      = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	DefaultGatewayBase = "https://gateway.pinata.cloud/ipfs"
	DefaultMaxFileSize = 100 << 20 // 100MB
)

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))
	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))

	// секреты маскируем
	for name, set := range map[string]bool{
		"DBPassword":      c.DBPassword != "",
		"RedisPassword":   c.RedisPassword != "",
		"AuthJWTSecret":   c.AuthJWTSecret != "",
		"PinataJWT":       c.PinataJWT != "",
		"PinataAPIKey":    c.PinataAPIKey != "",
		"PinataAPISecret": c.PinataAPISecret != "",
	} {
		if set {
			sb.WriteString(fmt.Sprintf("  %s: ********\n", name))
		} else {
			sb.WriteString(fmt.Sprintf("  %s: (empty)\n", name))
		}
	}

	sb.WriteString(fmt.Sprintf("  PinataPinURL: %s\n", c.PinataPinURL))
	sb.WriteString(fmt.Sprintf("  GatewayBase: %s\n", c.GatewayBase))
	sb.WriteString(fmt.Sprintf("  MaxFileSize: %d\n", c.MaxFileSize))

	return sb.String()
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"AUTH_JWT_SECRET", "AUTH_ISSUER", "AUTH_TOKEN_TTL",
		"PINATA_JWT", "PINATA_API_KEY", "PINATA_API_SECRET", "PINATA_PIN_URL",
		"IPFS_GATEWAY", "MAX_FILE_SIZE",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.PinataPinURL == "" {
		cfg.PinataPinURL = DefaultPinURL
	}
	if cfg.GatewayBase == "" {
		cfg.GatewayBase = DefaultGatewayBase
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.AuthTokenTTL <= 0 {
		cfg.AuthTokenTTL = 12 * time.Hour
	}
	return &cfg, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
