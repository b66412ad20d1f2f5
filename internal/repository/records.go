package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/domain/schema"
)

// Column — пара имя колонки / значение для INSERT.
type Column struct {
	Name  string
	Value any
}

// ListParams — параметры постраничного списка фичей.
type ListParams struct {
	Limit  int
	Offset int
	// Search — подстрока поиска (без учёта регистра); пусто — без фильтра.
	Search string
	// SearchTextFields — искать также по текстовым полям категории.
	SearchTextFields bool
}

// RecordRepository — CRUD для таблиц категорий.
// Имена таблиц и колонок берутся только из schema.Category.
type RecordRepository interface {
	// Insert вставляет запись в одной транзакции и возвращает её id.
	Insert(ctx context.Context, c schema.Category, cols []Column) (int64, error)
	// List возвращает страницу записей, новые первыми, с владельцем (LEFT JOIN).
	List(ctx context.Context, c schema.Category, p ListParams) (*model.RecordPage, error)
	// GetByID возвращает запись по id.
	GetByID(ctx context.Context, c schema.Category, id int64) (*model.Record, error)
	// GetFile возвращает имя файла записи (nil — файла нет).
	GetFile(ctx context.Context, c schema.Category, id int64) (*string, error)
	// Delete удаляет запись и возвращает количество удалённых строк.
	Delete(ctx context.Context, c schema.Category, id int64) (int64, error)
	// Count возвращает количество записей в таблице.
	Count(ctx context.Context, table string) (int64, error)
}

type recordRepo struct {
	db DB
}

// NewRecordRepository создаёт репозиторий фичей.
func NewRecordRepository(db DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Insert(ctx context.Context, c schema.Category, cols []Column) (int64, error) {
	if len(cols) == 0 {
		return 0, fmt.Errorf("нет колонок для вставки в %s", c.Table)
	}
	query, args := buildInsert(c.Table, cols)

	var id int64
	err := RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("ошибка вставки в %s: %w", c.Table, err)
	}
	return id, nil
}

// buildInsert строит INSERT за один проход по cols:
// N-я колонка и N-й плейсхолдер всегда относятся к одному элементу.
func buildInsert(table string, cols []Column) (string, []any) {
	names := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))

	for i, col := range cols {
		names = append(names, quoteIdent(col.Name))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, col.Value)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	return query, args
}

// selectColumns возвращает список колонок SELECT для записи категории.
// Значения полей приводятся к text, чтобы NUMERIC читался без потери точности.
func selectColumns(c schema.Category) string {
	parts := []string{"f.id", "f.usuario_id", "f.fecha_creacion", "f.fecha_actualizacion"}
	for _, fld := range c.Fields {
		parts = append(parts, fmt.Sprintf("f.%s::text", quoteIdent(fld.Name)))
	}
	parts = append(parts, "u.nombre_completo", "u.correo")
	return strings.Join(parts, ", ")
}

// searchPredicate строит условие поиска с параметром $n.
// По умолчанию поиск идёт только по id и дате создания.
func searchPredicate(c schema.Category, n int, textFields bool) string {
	p := fmt.Sprintf("$%d", n)
	conds := []string{
		"CAST(f.id AS TEXT) ILIKE " + p,
		"f.fecha_creacion::TEXT ILIKE " + p,
	}
	if textFields {
		for _, fld := range c.Fields {
			if fld.Kind == schema.KindText {
				conds = append(conds, fmt.Sprintf("f.%s ILIKE %s", quoteIdent(fld.Name), p))
			}
		}
	}
	return "(" + strings.Join(conds, " OR ") + ")"
}

// likePattern экранирует спецсимволы LIKE и оборачивает термин в %...%.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func (r *recordRepo) List(ctx context.Context, c schema.Category, p ListParams) (*model.RecordPage, error) {
	table := quoteIdent(c.Table)

	listWhere, countWhere := "", ""
	listArgs := []any{p.Limit, p.Offset}
	var countArgs []any
	if p.Search != "" {
		pattern := likePattern(p.Search)
		listWhere = "WHERE " + searchPredicate(c, 3, p.SearchTextFields)
		listArgs = append(listArgs, pattern)
		countWhere = "WHERE " + searchPredicate(c, 1, p.SearchTextFields)
		countArgs = append(countArgs, pattern)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		LEFT JOIN usuarios_admin u ON f.usuario_id = u.id
		%s
		ORDER BY f.fecha_creacion DESC, f.id DESC
		LIMIT $1 OFFSET $2`, selectColumns(c), table, listWhere)

	rows, err := r.db.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка %s: %w", c.Table, err)
	}
	defer rows.Close()

	page := &model.RecordPage{Items: []model.Record{}}
	for rows.Next() {
		rec, err := scanRecord(rows, c)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения записи %s: %w", c.Table, err)
		}
		page.Items = append(page.Items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации %s: %w", c.Table, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s f %s", table, countWhere)
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта %s: %w", c.Table, err)
	}

	return page, nil
}

func (r *recordRepo) GetByID(ctx context.Context, c schema.Category, id int64) (*model.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		LEFT JOIN usuarios_admin u ON f.usuario_id = u.id
		WHERE f.id = $1`, selectColumns(c), quoteIdent(c.Table))

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id), c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи %s: %w", c.Table, err)
	}
	return rec, nil
}

func (r *recordRepo) GetFile(ctx context.Context, c schema.Category, id int64) (*string, error) {
	fileField, ok := c.FileField()
	if !ok {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", quoteIdent(fileField.Name), quoteIdent(c.Table))

	var name *string
	if err := r.db.QueryRow(ctx, query, id).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла записи %s: %w", c.Table, err)
	}
	return name, nil
}

func (r *recordRepo) Delete(ctx context.Context, c schema.Category, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", quoteIdent(c.Table)), id)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления записи %s: %w", c.Table, err)
	}
	return tag.RowsAffected(), nil
}

func (r *recordRepo) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&n)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, fmt.Errorf("%w: таблица %s", ErrNotFound, table)
		}
		return 0, fmt.Errorf("ошибка подсчёта %s: %w", table, err)
	}
	return n, nil
}

// scanRecord читает строку в порядке selectColumns.
func scanRecord(row pgx.Row, c schema.Category) (*model.Record, error) {
	rec := &model.Record{Values: make(map[string]*string, len(c.Fields))}
	var created, updated *time.Time

	values := make([]*string, len(c.Fields))
	dest := make([]any, 0, len(c.Fields)+6)
	dest = append(dest, &rec.ID, &rec.UsuarioID, &created, &updated)
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &rec.UsuarioNombre, &rec.UsuarioEmail)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if created != nil {
		rec.FechaCreacion = *created
	}
	if updated != nil {
		rec.FechaActualizacion = *updated
	}
	for i, f := range c.Fields {
		rec.Values[f.Name] = values[i]
	}
	return rec, nil
}
