// Package config собирает настройки сервиса из значений по умолчанию,
// флагов командной строки, файла .env и переменных окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret используется, если секрет не задан явно
const DefaultJWTSecret = "default_jwt_secret"

// Config содержит настройки приложения
type Config struct {
	RunAddr       string
	GRPCAddr      string
	BaseURL       string
	DatabaseDSN   string
	RedisAddr     string
	JWTSecret     string
	TrustedSubnet string
	IPHashSalt    string
	LogLevel      string
	RecordTimeout time.Duration
	CacheTTL      time.Duration
	CookieTTL     time.Duration
	RateLimit     int
	CORSOrigins   []string
	// RemoteAddrFallback разрешает считать адрес соединения IP посетителя,
	// если прокси-заголовков нет. По умолчанию такие переходы хранятся без хеша IP.
	RemoteAddrFallback bool
}

// NewConfig читает .env (если есть), флаги процесса и окружение.
// Переменные окружения важнее флагов, флаги важнее значений по умолчанию.
func NewConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return Load(os.Args[1:], os.Getenv)
}

// loadDotEnv загружает переменные из файлов; отсутствующий файл не ошибка.
// Уже заданные переменные окружения не перезаписываются.
func loadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load разбирает аргументы args и переменные из getenv
func Load(args []string, getenv func(string) string) (*Config, error) {
	flags := flag.NewFlagSet("linktrack", flag.ContinueOnError)

	cfg := &Config{}
	flags.StringVar(&cfg.RunAddr, "a", ":8080", "address and port to run HTTP server")
	flags.StringVar(&cfg.GRPCAddr, "g", ":3200", "address and port to run gRPC server, empty disables it")
	flags.StringVar(&cfg.BaseURL, "b", "http://localhost:8080", "base URL for short links")
	flags.StringVar(&cfg.DatabaseDSN, "d", "", "database DSN for PostgreSQL")
	flags.StringVar(&cfg.RedisAddr, "r", "", "Redis address for link cache")
	flags.StringVar(&cfg.JWTSecret, "j", DefaultJWTSecret, "JWT secret key")
	flags.StringVar(&cfg.TrustedSubnet, "t", "", "trusted subnet in CIDR notation")
	flags.StringVar(&cfg.IPHashSalt, "s", "", "salt for visitor IP hashing")
	flags.StringVar(&cfg.LogLevel, "l", "info", "log level")
	flags.DurationVar(&cfg.RecordTimeout, "record-timeout", 5*time.Second, "timeout for storing one click")
	flags.DurationVar(&cfg.CacheTTL, "cache-ttl", 5*time.Minute, "TTL of cached links")
	flags.DurationVar(&cfg.CookieTTL, "cookie-ttl", 24*time.Hour, "TTL of identity cookie and token")
	flags.IntVar(&cfg.RateLimit, "rate-limit", 0, "requests per minute per IP, 0 disables")
	corsOrigins := flags.String("cors-origins", "", "comma-separated allowed CORS origins")
	flags.BoolVar(&cfg.RemoteAddrFallback, "remote-addr-ip", false, "use connection address as visitor IP when no proxy headers are present")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	stringEnv := map[string]*string{
		"SERVER_ADDRESS": &cfg.RunAddr,
		"GRPC_ADDRESS":   &cfg.GRPCAddr,
		"BASE_URL":       &cfg.BaseURL,
		"DATABASE_DSN":   &cfg.DatabaseDSN,
		"REDIS_ADDR":     &cfg.RedisAddr,
		"JWT_SECRET":     &cfg.JWTSecret,
		"TRUSTED_SUBNET": &cfg.TrustedSubnet,
		"IP_HASH_SALT":   &cfg.IPHashSalt,
		"LOG_LEVEL":      &cfg.LogLevel,
		"CORS_ORIGINS":   corsOrigins,
	}
	for name, target := range stringEnv {
		if v := getenv(name); v != "" {
			*target = v
		}
	}

	durationEnv := map[string]*time.Duration{
		"RECORD_TIMEOUT": &cfg.RecordTimeout,
		"CACHE_TTL":      &cfg.CacheTTL,
		"COOKIE_TTL":     &cfg.CookieTTL,
	}
	for name, target := range durationEnv {
		v := getenv(name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = d
	}

	if v := getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = n
	}

	if v := getenv("REMOTE_ADDR_FALLBACK"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REMOTE_ADDR_FALLBACK: %w", err)
		}
		cfg.RemoteAddrFallback = on
	}

	// Валидация значений
	cfg.RunAddr = validateAddress(cfg.RunAddr)
	if cfg.GRPCAddr != "" {
		cfg.GRPCAddr = validateAddress(cfg.GRPCAddr)
	}
	cfg.BaseURL = validateBaseURL(cfg.BaseURL)
	cfg.CORSOrigins = splitList(*corsOrigins)

	if cfg.RecordTimeout <= 0 {
		return nil, errors.New("record timeout must be positive")
	}
	if cfg.CookieTTL <= 0 {
		return nil, errors.New("cookie TTL must be positive")
	}

	return cfg, nil
}

func validateAddress(addr string) string {
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

func validateBaseURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return strings.TrimRight(url, "/")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
