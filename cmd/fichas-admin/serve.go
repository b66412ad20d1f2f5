package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/fichas-admin/internal/api/handlers"
	"github.com/bigkaa/fichas-admin/internal/api/middleware"
	"github.com/bigkaa/fichas-admin/internal/auth"
	"github.com/bigkaa/fichas-admin/internal/config"
	"github.com/bigkaa/fichas-admin/internal/database"
	"github.com/bigkaa/fichas-admin/internal/domain/schema"
	"github.com/bigkaa/fichas-admin/internal/repository"
	"github.com/bigkaa/fichas-admin/internal/server"
	"github.com/bigkaa/fichas-admin/internal/service"
	"github.com/bigkaa/fichas-admin/internal/storage"
)

// runServe поднимает все слои и блокируется до отмены ctx.
// Любая ошибка до запуска HTTP-сервера прерывает старт.
func runServe(ctx context.Context) error {
	// 1. Конфигурация и логирование
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	logger := config.SetupLogger(cfg)
	logger.Info("Панель фичей запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if os.Getenv("FT_REGISTRATION_CODE") == "" {
		logger.Warn("FT_REGISTRATION_CODE не задана, используется значение по умолчанию")
	}

	// 2. Миграции и подключение к PostgreSQL
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		return fmt.Errorf("ошибка миграций БД: %w", err)
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("ошибка подключения к PostgreSQL: %w", err)
	}
	defer pool.Close()

	// 3. Таблицы категорий
	registry := schema.Default()
	if err := repository.NewProvisioner(pool, logger).EnsureAll(ctx, registry); err != nil {
		return fmt.Errorf("ошибка подготовки таблиц: %w", err)
	}

	// 4. Хранилище изображений
	store, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}
	logger.Info("Хранилище изображений готово", slog.String("backend", cfg.StorageBackend))

	// 5. Репозитории и сервисы
	recordRepo := repository.NewRecordRepository(pool)

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("ошибка настройки JWT: %w", err)
	}

	statsSvc := service.NewStatsService(registry, recordRepo, cfg.StatsCacheTTL, logger)
	recordSvc := service.NewRecordService(registry, recordRepo, store, statsSvc, cfg.SearchTextFields, logger)
	newsSvc := service.NewNewsService(repository.NewNewsRepository(pool), store, cfg.NewsLimit, logger)
	accountSvc := service.NewAccountService(
		repository.NewAccountRepository(pool), issuer,
		cfg.RegistrationCode, cfg.EmailDomain, logger,
	)

	// 6. topologymetrics
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	depCfg := service.DephealthConfig{
		ServiceID:     "fichas-admin",
		Group:         cfg.DephealthGroup,
		DB:            pgDB,
		PgURL:         cfg.DatabaseURL(),
		CheckInterval: cfg.DephealthCheckInterval,
	}
	if cfg.StorageBackend == config.StorageS3 {
		depCfg.S3Endpoint = cfg.S3Endpoint
		depCfg.S3UseSSL = cfg.S3UseSSL
	}
	dephealthSvc, err := service.NewDephealthService(depCfg, logger)
	if err != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", err.Error()),
		)
	} else if err := dephealthSvc.Start(ctx); err != nil {
		logger.Warn("Ошибка запуска topologymetrics", slog.String("error", err.Error()))
	} else {
		defer dephealthSvc.Stop()
	}

	// 7. HTTP
	h := server.Handlers{
		Health:   handlers.NewHealthHandler(database.NewReadinessChecker(pool)),
		Accounts: handlers.NewAccountsHandler(accountSvc, logger),
		Fichas:   handlers.NewFichasHandler(recordSvc, cfg.MaxUploadSize, logger),
		Stats:    handlers.NewStatsHandler(statsSvc, logger),
		News:     handlers.NewNewsHandler(newsSvc, cfg.MaxUploadSize, logger),
		Catalog:  handlers.NewCatalogHandler(service.NewCatalogService()),
		Images:   handlers.NewImagesHandler(store, logger),
		TestDB: handlers.NewTestDBHandler(func(ctx context.Context) (time.Time, error) {
			return repository.ServerTime(ctx, pool)
		}, logger),
	}
	jwtAuth := middleware.NewJWTAuth(issuer, logger)

	srv := server.New(cfg, logger, registry, h, jwtAuth)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("Панель фичей остановлена")
	return nil
}

// newStore создаёт хранилище по FT_STORAGE_BACKEND.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == config.StorageS3 {
		return storage.NewS3Store(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
			Region:    cfg.S3Region,
		})
	}
	return storage.NewFileStore(cfg.UploadDir)
}
