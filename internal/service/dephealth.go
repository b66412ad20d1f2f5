// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Мониторятся:
//   - PostgreSQL — SQL checker через существующий pgxpool (connection pool mode, critical)
//   - S3/MinIO — HTTP checker к /minio/health/live (только при FT_STORAGE_BACKEND=s3)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // HTTP checker для S3
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"     // PostgreSQL checker (pool mode)
)

// s3HealthPath — liveness endpoint MinIO.
const s3HealthPath = "/minio/health/live"

// DephealthConfig — параметры мониторинга зависимостей.
type DephealthConfig struct {
	// ServiceID — имя вершины графа текущего приложения
	ServiceID string
	// Group — имя группы в метриках (FT_DEPHEALTH_GROUP)
	Group string
	// DB — *sql.DB, полученный из pgxpool через stdlib.OpenDBFromPool()
	DB *sql.DB
	// PgURL — URL PostgreSQL (для лейблов, не для подключения)
	PgURL string
	// S3Endpoint — host:port S3; пусто — S3 не мониторится
	S3Endpoint string
	S3UseSSL   bool
	// CheckInterval — интервал проверки (FT_DEPHEALTH_CHECK_INTERVAL)
	CheckInterval time.Duration
}

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
func NewDephealthService(cfg DephealthConfig, logger *slog.Logger) (*DephealthService, error) {
	opts := []dephealth.Option{
		dephealth.WithLogger(logger),
		// pgcheck.New + AddDependency напрямую, без contrib/sqldb
		// с транзитивной зависимостью на MySQL.
		dephealth.AddDependency("postgresql", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(cfg.DB)),
			dephealth.FromURL(cfg.PgURL),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		),
	}
	if cfg.S3Endpoint != "" {
		opts = append(opts, dephealth.HTTP("s3-images",
			dephealth.FromURL(s3URL(cfg.S3Endpoint, cfg.S3UseSSL)),
			dephealth.WithHTTPHealthPath(s3HealthPath),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(false),
		))
	}
	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// s3URL строит URL из endpoint в формате minio-go (host:port без схемы).
func s3URL(endpoint string, useSSL bool) string {
	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}
	return scheme + endpoint
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}
