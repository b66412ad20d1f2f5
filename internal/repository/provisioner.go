package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bigkaa/fichas-admin/internal/domain/schema"
)

// Provisioner создаёт таблицы категорий по описанию из реестра.
// Вызывается один раз при старте, до запуска HTTP-сервера.
type Provisioner struct {
	db     DBTX
	logger *slog.Logger
}

// NewProvisioner создаёт Provisioner.
func NewProvisioner(db DBTX, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		db:     db,
		logger: logger.With(slog.String("component", "provisioner")),
	}
}

// EnsureAll создаёт таблицы всех категорий реестра.
// Первая ошибка прерывает процесс.
func (p *Provisioner) EnsureAll(ctx context.Context, reg *schema.Registry) error {
	for _, c := range reg.All() {
		if err := p.EnsureTable(ctx, c); err != nil {
			return err
		}
	}
	p.logger.Info("Таблицы категорий готовы", slog.Int("count", reg.Len()))
	return nil
}

// EnsureTable идемпотентно создаёт таблицу категории и добавляет
// недостающие колонки. Повторный вызов не создаёт дубликатов.
func (p *Provisioner) EnsureTable(ctx context.Context, c schema.Category) error {
	if _, err := p.db.Exec(ctx, createTableSQL(c)); err != nil {
		return fmt.Errorf("ошибка создания таблицы %s: %w", c.Table, err)
	}
	if _, err := p.db.Exec(ctx, addColumnsSQL(c)); err != nil {
		return fmt.Errorf("ошибка добавления колонок в %s: %w", c.Table, err)
	}

	p.logger.Debug("Таблица создана или уже существует",
		slog.String("table", c.Table),
		slog.Int("fields", len(c.Fields)),
	)
	return nil
}

// columnType возвращает SQL-тип колонки для типа поля.
func columnType(kind schema.FieldKind) string {
	switch kind {
	case schema.KindNumber:
		return "NUMERIC(10,2)"
	case schema.KindFile:
		return "VARCHAR(255)"
	default:
		return "TEXT"
	}
}

func createTableSQL(c schema.Category) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quoteIdent(c.Table))
	b.WriteString(` (
	id SERIAL PRIMARY KEY,
	usuario_id INT REFERENCES usuarios_admin(id) ON DELETE SET NULL,
	fecha_creacion TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	fecha_actualizacion TIMESTAMP DEFAULT CURRENT_TIMESTAMP`)
	for _, f := range c.Fields {
		b.WriteString(",\n\t")
		b.WriteString(quoteIdent(f.Name))
		b.WriteString(" ")
		b.WriteString(columnType(f.Kind))
	}
	b.WriteString("\n)")
	return b.String()
}

// addColumnsSQL догоняет существующую таблицу до текущего описания полей.
func addColumnsSQL(c schema.Category) string {
	parts := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		parts = append(parts, fmt.Sprintf("ADD COLUMN IF NOT EXISTS %s %s", quoteIdent(f.Name), columnType(f.Kind)))
	}
	return "ALTER TABLE " + quoteIdent(c.Table) + " " + strings.Join(parts, ", ")
}
