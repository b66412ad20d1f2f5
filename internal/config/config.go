// Пакет config — загрузка и валидация конфигурации панели фичей
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Допустимые backend'ы хранилища файлов.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config содержит все параметры конфигурации сервиса.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Разрешённые CORS origins ("*" — любые)
	CORSOrigins []string

	// --- PostgreSQL ---

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- JWT ---

	// Секрет подписи HS256
	JWTSecret string
	// Время жизни токена
	JWTTTL time.Duration

	// --- Хранилище файлов ---

	// Backend: local или s3
	StorageBackend string
	// Директория для local backend
	UploadDir string
	// Максимальный размер изображения в байтах
	MaxUploadSize int64

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string

	// --- Бизнес-правила ---

	// Институциональный код для регистрации
	RegistrationCode string
	// Обязательный суффикс e-mail (пусто — без проверки)
	EmailDomain string
	// Максимальное количество хранимых новостей
	NewsLimit int
	// Время жизни кэша статистики (0 — без кэша)
	StatsCacheTTL time.Duration
	// Поиск по текстовым полям в дополнение к id/дате
	SearchTextFields bool

	// --- topologymetrics ---

	DephealthGroup         string
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// FT_PORT — порт HTTP-сервера (по умолчанию 3001)
	cfg.Port, err = getEnvInt("FT_PORT", 3001)
	if err != nil {
		return nil, fmt.Errorf("FT_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("FT_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("FT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("FT_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("FT_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("FT_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	cfg.CORSOrigins = parseCSV(getEnvDefault("FT_CORS_ORIGINS", "*"))

	// --- PostgreSQL ---

	if err := cfg.loadDatabase(); err != nil {
		return nil, err
	}

	// --- JWT ---

	// FT_JWT_SECRET — обязательный
	cfg.JWTSecret, err = getEnvRequired("FT_JWT_SECRET")
	if err != nil {
		return nil, err
	}

	cfg.JWTTTL, err = getEnvDuration("FT_JWT_TTL", 2*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("FT_JWT_TTL: %w", err)
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("FT_JWT_TTL: значение должно быть положительным")
	}

	// --- Хранилище ---

	if err := cfg.loadStorage(); err != nil {
		return nil, err
	}

	// --- Бизнес-правила ---

	cfg.RegistrationCode = getEnvDefault("FT_REGISTRATION_CODE", "CRAC")

	// FT_EMAIL_DOMAIN — задаётся явно пустой строкой, чтобы отключить проверку
	cfg.EmailDomain = "@policia.gob.ec"
	if v, ok := os.LookupEnv("FT_EMAIL_DOMAIN"); ok {
		cfg.EmailDomain = strings.TrimSpace(v)
	}

	cfg.NewsLimit, err = getEnvInt("FT_NEWS_LIMIT", 5)
	if err != nil {
		return nil, fmt.Errorf("FT_NEWS_LIMIT: %w", err)
	}
	if cfg.NewsLimit < 1 {
		return nil, fmt.Errorf("FT_NEWS_LIMIT: значение %d должно быть не меньше 1", cfg.NewsLimit)
	}

	cfg.StatsCacheTTL, err = getEnvDuration("FT_STATS_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FT_STATS_CACHE_TTL: %w", err)
	}
	if cfg.StatsCacheTTL < 0 {
		return nil, fmt.Errorf("FT_STATS_CACHE_TTL: значение не может быть отрицательным")
	}

	cfg.SearchTextFields, err = getEnvBool("FT_SEARCH_TEXT_FIELDS", false)
	if err != nil {
		return nil, fmt.Errorf("FT_SEARCH_TEXT_FIELDS: %w", err)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("FT_DEPHEALTH_GROUP", "fichas")

	cfg.DephealthCheckInterval, err = getEnvDuration("FT_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FT_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("FT_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FT_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// LoadDatabase загружает только параметры PostgreSQL и логирования.
// Используется CLI-командами, которым не нужен HTTP-сервер.
func LoadDatabase() (*Config, error) {
	cfg := &Config{LogFormat: getEnvDefault("FT_LOG_FORMAT", "text")}
	var err error

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("FT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("FT_LOG_LEVEL: %w", err)
	}
	if err := cfg.loadDatabase(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadDatabase() error {
	var err error

	if c.DBHost, err = getEnvRequired("FT_DB_HOST"); err != nil {
		return err
	}

	c.DBPort, err = getEnvInt("FT_DB_PORT", 5432)
	if err != nil {
		return fmt.Errorf("FT_DB_PORT: %w", err)
	}

	if c.DBName, err = getEnvRequired("FT_DB_NAME"); err != nil {
		return err
	}
	if c.DBUser, err = getEnvRequired("FT_DB_USER"); err != nil {
		return err
	}
	if c.DBPassword, err = getEnvRequired("FT_DB_PASSWORD"); err != nil {
		return err
	}

	c.DBSSLMode = getEnvDefault("FT_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[c.DBSSLMode] {
		return fmt.Errorf("FT_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", c.DBSSLMode)
	}
	return nil
}

func (c *Config) loadStorage() error {
	var err error

	c.StorageBackend = getEnvDefault("FT_STORAGE_BACKEND", StorageLocal)
	c.UploadDir = getEnvDefault("FT_UPLOAD_DIR", "./img2")

	c.MaxUploadSize, err = getEnvInt64("FT_MAX_UPLOAD_SIZE", 5<<20)
	if err != nil {
		return fmt.Errorf("FT_MAX_UPLOAD_SIZE: %w", err)
	}
	if c.MaxUploadSize < 1 {
		return fmt.Errorf("FT_MAX_UPLOAD_SIZE: значение должно быть положительным")
	}

	switch c.StorageBackend {
	case StorageLocal:
		return nil
	case StorageS3:
	default:
		return fmt.Errorf("FT_STORAGE_BACKEND: недопустимое значение %q, допустимые: local, s3", c.StorageBackend)
	}

	if c.S3Endpoint, err = getEnvRequired("FT_S3_ENDPOINT"); err != nil {
		return err
	}
	if c.S3AccessKey, err = getEnvRequired("FT_S3_ACCESS_KEY"); err != nil {
		return err
	}
	if c.S3SecretKey, err = getEnvRequired("FT_S3_SECRET_KEY"); err != nil {
		return err
	}
	if c.S3Bucket, err = getEnvRequired("FT_S3_BUCKET"); err != nil {
		return err
	}
	c.S3UseSSL, err = getEnvBool("FT_S3_USE_SSL", false)
	if err != nil {
		return fmt.Errorf("FT_S3_USE_SSL: %w", err)
	}
	c.S3Region = getEnvDefault("FT_S3_REGION", "")
	return nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL PostgreSQL без пароля (для меток topologymetrics).
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.User(c.DBUser),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// MigrateURL возвращает URL для golang-migrate (драйвер pgx5).
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// Redacted возвращает эффективную конфигурацию в виде пар ключ-значение
// со скрытыми секретами. Используется командой env.
func (c *Config) Redacted() [][2]string {
	out := [][2]string{
		{"FT_PORT", strconv.Itoa(c.Port)},
		{"FT_LOG_LEVEL", strings.ToLower(c.LogLevel.String())},
		{"FT_LOG_FORMAT", c.LogFormat},
		{"FT_CORS_ORIGINS", strings.Join(c.CORSOrigins, ",")},
		{"FT_DB_HOST", c.DBHost},
		{"FT_DB_PORT", strconv.Itoa(c.DBPort)},
		{"FT_DB_NAME", c.DBName},
		{"FT_DB_USER", c.DBUser},
		{"FT_DB_PASSWORD", mask(c.DBPassword)},
		{"FT_DB_SSL_MODE", c.DBSSLMode},
		{"FT_JWT_SECRET", mask(c.JWTSecret)},
		{"FT_JWT_TTL", c.JWTTTL.String()},
		{"FT_STORAGE_BACKEND", c.StorageBackend},
		{"FT_UPLOAD_DIR", c.UploadDir},
		{"FT_MAX_UPLOAD_SIZE", strconv.FormatInt(c.MaxUploadSize, 10)},
	}
	if c.StorageBackend == StorageS3 {
		out = append(out,
			[2]string{"FT_S3_ENDPOINT", c.S3Endpoint},
			[2]string{"FT_S3_ACCESS_KEY", c.S3AccessKey},
			[2]string{"FT_S3_SECRET_KEY", mask(c.S3SecretKey)},
			[2]string{"FT_S3_BUCKET", c.S3Bucket},
			[2]string{"FT_S3_USE_SSL", strconv.FormatBool(c.S3UseSSL)},
			[2]string{"FT_S3_REGION", c.S3Region},
		)
	}
	out = append(out,
		[2]string{"FT_REGISTRATION_CODE", mask(c.RegistrationCode)},
		[2]string{"FT_EMAIL_DOMAIN", c.EmailDomain},
		[2]string{"FT_NEWS_LIMIT", strconv.Itoa(c.NewsLimit)},
		[2]string{"FT_STATS_CACHE_TTL", c.StatsCacheTTL.String()},
		[2]string{"FT_SEARCH_TEXT_FIELDS", strconv.FormatBool(c.SearchTextFields)},
		[2]string{"FT_DEPHEALTH_GROUP", c.DephealthGroup},
		[2]string{"FT_DEPHEALTH_CHECK_INTERVAL", c.DephealthCheckInterval.String()},
		[2]string{"FT_SHUTDOWN_TIMEOUT", c.ShutdownTimeout.String()},
	)
	return out
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// mask скрывает секрет, оставляя только признак наличия.
func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное логическое значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
