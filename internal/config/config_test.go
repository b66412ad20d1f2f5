package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"FT_DB_HOST":     "localhost",
		"FT_DB_NAME":     "fichas",
		"FT_DB_USER":     "fichas",
		"FT_DB_PASSWORD": "secret",
		"FT_JWT_SECRET":  "jwt-secret",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 3001 {
		t.Errorf("Port = %d, ожидается 3001", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.JWTTTL != 2*time.Hour {
		t.Errorf("JWTTTL = %v, ожидается 2h", cfg.JWTTTL)
	}
	if cfg.StorageBackend != StorageLocal {
		t.Errorf("StorageBackend = %q, ожидается local", cfg.StorageBackend)
	}
	if cfg.UploadDir != "./img2" {
		t.Errorf("UploadDir = %q, ожидается ./img2", cfg.UploadDir)
	}
	if cfg.MaxUploadSize != 5<<20 {
		t.Errorf("MaxUploadSize = %d, ожидается %d", cfg.MaxUploadSize, 5<<20)
	}
	if cfg.RegistrationCode != "CRAC" {
		t.Errorf("RegistrationCode = %q, ожидается CRAC", cfg.RegistrationCode)
	}
	if cfg.EmailDomain != "@policia.gob.ec" {
		t.Errorf("EmailDomain = %q, ожидается @policia.gob.ec", cfg.EmailDomain)
	}
	if cfg.NewsLimit != 5 {
		t.Errorf("NewsLimit = %d, ожидается 5", cfg.NewsLimit)
	}
	if cfg.StatsCacheTTL != 30*time.Second {
		t.Errorf("StatsCacheTTL = %v, ожидается 30s", cfg.StatsCacheTTL)
	}
	if cfg.SearchTextFields {
		t.Error("SearchTextFields = true, ожидается false")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, ожидается [*]", cfg.CORSOrigins)
	}
	if cfg.DephealthGroup != "fichas" {
		t.Errorf("DephealthGroup = %q, ожидается fichas", cfg.DephealthGroup)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["FT_PORT"] = "8080"
	envs["FT_LOG_LEVEL"] = "debug"
	envs["FT_LOG_FORMAT"] = "text"
	envs["FT_JWT_TTL"] = "30m"
	envs["FT_NEWS_LIMIT"] = "10"
	envs["FT_SEARCH_TEXT_FIELDS"] = "true"
	envs["FT_CORS_ORIGINS"] = "http://a.local, http://b.local"
	envs["FT_STATS_CACHE_TTL"] = "0s"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидается 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Errorf("JWTTTL = %v, ожидается 30m", cfg.JWTTTL)
	}
	if cfg.NewsLimit != 10 {
		t.Errorf("NewsLimit = %d, ожидается 10", cfg.NewsLimit)
	}
	if !cfg.SearchTextFields {
		t.Error("SearchTextFields = false, ожидается true")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.local" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.StatsCacheTTL != 0 {
		t.Errorf("StatsCacheTTL = %v, ожидается 0", cfg.StatsCacheTTL)
	}
}

func TestLoad_EmailDomainDisabled(t *testing.T) {
	envs := minimalEnvs()
	envs["FT_EMAIL_DOMAIN"] = ""
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.EmailDomain != "" {
		t.Errorf("EmailDomain = %q, ожидается пустая строка", cfg.EmailDomain)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for missing := range minimalEnvs() {
		t.Run(missing, func(t *testing.T) {
			envs := minimalEnvs()
			envs[missing] = ""
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() не вернул ошибку при отсутствии %s", missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("ошибка %q не упоминает %s", err, missing)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"FT_PORT", "0"},
		{"FT_PORT", "70000"},
		{"FT_PORT", "abc"},
		{"FT_LOG_LEVEL", "verbose"},
		{"FT_LOG_FORMAT", "xml"},
		{"FT_DB_SSL_MODE", "allow"},
		{"FT_JWT_TTL", "2 hours"},
		{"FT_JWT_TTL", "-1h"},
		{"FT_STORAGE_BACKEND", "gcs"},
		{"FT_MAX_UPLOAD_SIZE", "0"},
		{"FT_NEWS_LIMIT", "0"},
		{"FT_STATS_CACHE_TTL", "-5s"},
		{"FT_SEARCH_TEXT_FIELDS", "maybe"},
		{"FT_SHUTDOWN_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			envs := minimalEnvs()
			envs[tt.key] = tt.value
			setEnvs(t, envs)

			if _, err := Load(); err == nil {
				t.Errorf("Load() не вернул ошибку при %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_S3RequiresCredentials(t *testing.T) {
	envs := minimalEnvs()
	envs["FT_STORAGE_BACKEND"] = "s3"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Fatal("Load() не вернул ошибку для s3 без параметров")
	}

	t.Setenv("FT_S3_ENDPOINT", "minio:9000")
	t.Setenv("FT_S3_ACCESS_KEY", "access")
	t.Setenv("FT_S3_SECRET_KEY", "secret")
	t.Setenv("FT_S3_BUCKET", "fichas")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.S3Bucket != "fichas" || cfg.S3UseSSL {
		t.Errorf("S3 = %q/%v, ожидается fichas/false", cfg.S3Bucket, cfg.S3UseSSL)
	}
}

func TestLoadDatabase_IgnoresServerSettings(t *testing.T) {
	envs := minimalEnvs()
	envs["FT_JWT_SECRET"] = ""
	setEnvs(t, envs)

	cfg, err := LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase() вернул ошибку: %v", err)
	}
	if cfg.DBName != "fichas" {
		t.Errorf("DBName = %q, ожидается fichas", cfg.DBName)
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.example.com",
		DBPort:     5432,
		DBName:     "fichas",
		DBUser:     "user",
		DBPassword: "pass",
		DBSSLMode:  "disable",
	}
	expected := "host=db.example.com port=5432 dbname=fichas user=user password=pass sslmode=disable"
	if dsn := cfg.DatabaseDSN(); dsn != expected {
		t.Errorf("DatabaseDSN() = %q, ожидается %q", dsn, expected)
	}
}

func TestMigrateURL_EscapesPassword(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     5432,
		DBName:     "fichas",
		DBUser:     "user",
		DBPassword: "p@ss:word/1",
		DBSSLMode:  "require",
	}

	got := cfg.MigrateURL()
	want := "pgx5://user:p%40ss%3Aword%2F1@db:5432/fichas?sslmode=require"
	if got != want {
		t.Errorf("MigrateURL() = %q, ожидается %q", got, want)
	}
	if strings.Contains(cfg.DatabaseURL(), "p@ss") {
		t.Errorf("DatabaseURL() содержит пароль: %q", cfg.DatabaseURL())
	}
}

func TestRedacted_MasksSecrets(t *testing.T) {
	setEnvs(t, minimalEnvs())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	for _, kv := range cfg.Redacted() {
		if kv[1] == "secret" || kv[1] == "jwt-secret" || kv[1] == "CRAC" {
			t.Errorf("%s не замаскирован: %q", kv[0], kv[1])
		}
	}
}

func TestSetupLogger(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			cfg := &Config{
				LogLevel:  slog.LevelInfo,
				LogFormat: format,
			}
			if logger := SetupLogger(cfg); logger == nil {
				t.Error("SetupLogger() вернул nil")
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"*", []string{"*"}},
		{"http://a, http://b", []string{"http://a", "http://b"}},
		{"a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCSV(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseCSV(%q) = %v, ожидается %v", tt.input, result, tt.expected)
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCSV(%q)[%d] = %q, ожидается %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}
