// Точка входа панели фичей.
// Без подкоманды выполняется serve: миграции, подготовка таблиц категорий,
// HTTP-сервер с JWT middleware и graceful shutdown.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bigkaa/fichas-admin/internal/config"
	"github.com/bigkaa/fichas-admin/internal/database"
	"github.com/bigkaa/fichas-admin/internal/repository"
	"github.com/bigkaa/fichas-admin/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fichas-admin: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fichas-admin",
		Short:        "Панель фичей технических характеристик",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCheckDBCmd(),
		newEnvCmd(),
		newCreateAdminCmd(),
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Применить миграции, создать таблицы категорий и запустить HTTP-сервер",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции БД и выйти",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			return database.Migrate(cfg, config.SetupLogger(cfg))
		},
	}
}

func newCheckDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Проверить подключение к PostgreSQL (SELECT NOW())",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			logger := config.SetupLogger(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			pool, err := database.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			now, err := repository.ServerTime(ctx, pool)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PostgreSQL доступен, время сервера: %s\n", now.Format(time.RFC3339))
			return nil
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Показать эффективную конфигурацию (секреты скрыты)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			for _, kv := range cfg.Redacted() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", kv[0], kv[1])
			}
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var nombre, correo, usuario, clave string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Создать учётную запись без институционального кода",
		Long: `Создаёт первую учётную запись панели.
Регистрация через /api/registro требует токен, поэтому первая
учётная запись создаётся этой командой.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clave == "" {
				clave = os.Getenv("FT_ADMIN_PASSWORD")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.SetupLogger(cfg)
			ctx := cmd.Context()

			if err := database.Migrate(cfg, logger); err != nil {
				return err
			}
			pool, err := database.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			accounts := service.NewAccountService(
				repository.NewAccountRepository(pool), nil,
				cfg.RegistrationCode, cfg.EmailDomain, logger,
			)
			a, err := accounts.CreateAdmin(ctx, nombre, correo, usuario, clave)
			if err != nil {
				return fmt.Errorf("%s: %w", service.PublicMessage(err, "ошибка создания учётной записи"), err)
			}
			logger.Info("Учётная запись создана",
				slog.Int64("id", a.ID),
				slog.String("usuario", a.Usuario),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&nombre, "nombre", "", "полное имя")
	cmd.Flags().StringVar(&correo, "correo", "", "e-mail в институциональном домене")
	cmd.Flags().StringVar(&usuario, "usuario", "", "логин")
	cmd.Flags().StringVar(&clave, "clave", "", "пароль (по умолчанию FT_ADMIN_PASSWORD)")
	for _, name := range []string{"nombre", "correo", "usuario"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
