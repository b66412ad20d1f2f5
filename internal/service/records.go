// records.go — бизнес-логика фичей: сохранение с компенсацией файла,
// постраничный список, получение и удаление.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/domain/schema"
	"github.com/bigkaa/fichas-admin/internal/repository"
	"github.com/bigkaa/fichas-admin/internal/storage"
)

// Параметры пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// maxPage ограничивает offset, чтобы (page-1)*limit не переполнялся.
const maxPage = 1 << 24

// numericLimit — граница NUMERIC(10,2) по модулю.
const numericLimit = 1e8

// Сообщения для клиента.
const (
	msgInvalidTable  = "Tabla no válida"
	msgNotFound      = "Ficha no encontrada"
	msgBadPagination = "Parámetros de paginación inválidos"
)

// Upload — загруженный файл.
type Upload struct {
	Body        io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// RecordPage — страница списка с метаданными пагинации.
type RecordPage struct {
	Items      []model.Record
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Invalidator сбрасывает кэш, зависящий от количества записей.
type Invalidator interface {
	Invalidate()
}

// RecordService — операции над фичами всех категорий.
type RecordService struct {
	registry         *schema.Registry
	repo             repository.RecordRepository
	store            storage.Store
	cache            Invalidator
	searchTextFields bool
	logger           *slog.Logger
}

// NewRecordService создаёт RecordService.
// cache может быть nil.
func NewRecordService(
	registry *schema.Registry,
	repo repository.RecordRepository,
	store storage.Store,
	cache Invalidator,
	searchTextFields bool,
	logger *slog.Logger,
) *RecordService {
	return &RecordService{
		registry:         registry,
		repo:             repo,
		store:            store,
		cache:            cache,
		searchTextFields: searchTextFields,
		logger:           logger.With(slog.String("component", "record_service")),
	}
}

// category разрешает имя таблицы через реестр.
func (s *RecordService) category(table string) (schema.Category, error) {
	c, ok := s.registry.Lookup(table)
	if !ok {
		return schema.Category{}, newError(ErrValidation, msgInvalidTable)
	}
	return c, nil
}

// Save проверяет данные, сохраняет файл и вставляет запись в одной транзакции.
// principalID берётся только из проверенного токена.
// Если вставка не удалась, сохранённый файл удаляется.
func (s *RecordService) Save(
	ctx context.Context,
	table string,
	principalID int64,
	values map[string]string,
	file *Upload,
) (int64, error) {
	c, err := s.category(table)
	if err != nil {
		return 0, err
	}
	if principalID <= 0 {
		return 0, newError(ErrUnauthorized, "Token inválido")
	}

	fieldValues, err := normalizeValues(c, values)
	if err != nil {
		return 0, err
	}

	fileField, hasFile := c.FileField()
	if file != nil && !hasFile {
		return 0, newError(ErrValidation, "La categoría no admite archivos")
	}

	var stored *string
	if file != nil {
		name, err := s.store.Save(ctx, file.Body, file.Size, file.Filename, file.ContentType)
		if err != nil {
			return 0, fmt.Errorf("%w: сохранение файла: %v", ErrStorage, err)
		}
		stored = &name
	}

	cols := make([]repository.Column, 0, len(c.Fields)+1)
	for _, f := range c.Fields {
		if hasFile && f.Name == fileField.Name {
			cols = append(cols, repository.Column{Name: f.Name, Value: stored})
			continue
		}
		cols = append(cols, repository.Column{Name: f.Name, Value: fieldValues[f.Name]})
	}
	cols = append(cols, repository.Column{Name: "usuario_id", Value: principalID})

	id, err := s.repo.Insert(ctx, c, cols)
	if err != nil {
		if stored != nil {
			s.removeOrphan(ctx, *stored)
		}
		s.logger.Error("Ошибка сохранения фичи",
			slog.String("table", c.Table),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.invalidate()
	s.logger.Info("Фича сохранена",
		slog.String("table", c.Table),
		slog.Int64("id", id),
		slog.Int64("usuario_id", principalID),
	)
	return id, nil
}

// removeOrphan удаляет файл, оставшийся без записи. Ошибка только логируется.
func (s *RecordService) removeOrphan(ctx context.Context, name string) {
	// Запрос мог быть отменён, файл всё равно нужно удалить.
	if err := s.store.Delete(context.WithoutCancel(ctx), name); err != nil {
		s.logger.Warn("Не удалось удалить файл после ошибки вставки",
			slog.String("file", name),
			slog.String("error", err.Error()),
		)
	}
}

// normalizeValues строит значения нефайловых полей.
// Пустое значение — NULL. Числа проверяются и передаются строкой,
// чтобы PostgreSQL привёл их к NUMERIC без потери точности.
func normalizeValues(c schema.Category, values map[string]string) (map[string]*string, error) {
	out := make(map[string]*string, len(c.Fields))
	for _, f := range c.ValueFields() {
		raw, ok := values[f.Name]
		if !ok || raw == "" {
			out[f.Name] = nil
			continue
		}

		if f.Kind == schema.KindNumber {
			v := strings.TrimSpace(raw)
			if v == "" {
				out[f.Name] = nil
				continue
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, newError(ErrValidation, fmt.Sprintf("El campo %s debe ser numérico", f.Name))
			}
			if math.Abs(n) >= numericLimit {
				return nil, newError(ErrValidation, fmt.Sprintf("El campo %s está fuera de rango", f.Name))
			}
			raw = v
		}

		val := raw
		out[f.Name] = &val
	}
	return out, nil
}

// List возвращает страницу записей категории.
// page и limit должны быть положительными; limit ограничивается MaxLimit.
func (s *RecordService) List(ctx context.Context, table string, page, limit int, search string) (*RecordPage, error) {
	c, err := s.category(table)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > maxPage || limit < 1 {
		return nil, newError(ErrValidation, msgBadPagination)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	res, err := s.repo.List(ctx, c, repository.ListParams{
		Limit:            limit,
		Offset:           (page - 1) * limit,
		Search:           search,
		SearchTextFields: s.searchTextFields,
	})
	if err != nil {
		return nil, err
	}

	return &RecordPage{
		Items:      res.Items,
		Page:       page,
		Limit:      limit,
		Total:      res.Total,
		TotalPages: totalPages(res.Total, limit),
	}, nil
}

// totalPages = ceil(total / limit).
func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Get возвращает запись по id.
func (s *RecordService) Get(ctx context.Context, table string, id int64) (*model.Record, error) {
	c, err := s.category(table)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByID(ctx, c, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, msgNotFound)
		}
		return nil, err
	}
	return rec, nil
}

// Delete удаляет запись, затем её файл.
// Отсутствующая запись не считается ошибкой. Если файл удалить не удалось,
// строка уже удалена и возвращается ErrFileCleanup.
func (s *RecordService) Delete(ctx context.Context, table string, id int64) error {
	c, err := s.category(table)
	if err != nil {
		return err
	}

	file, err := s.repo.GetFile(ctx, c, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	n, err := s.repo.Delete(ctx, c, id)
	if err != nil {
		return err
	}
	if n > 0 {
		s.invalidate()
	}

	if file != nil && *file != "" {
		if err := s.store.Delete(ctx, *file); err != nil {
			s.logger.Error("Запись удалена, файл удалить не удалось",
				slog.String("table", c.Table),
				slog.Int64("id", id),
				slog.String("file", *file),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("%w: %s: %v", ErrFileCleanup, *file, err)
		}
	}

	s.logger.Info("Фича удалена",
		slog.String("table", c.Table),
		slog.Int64("id", id),
		slog.Int64("rows", n),
	)
	return nil
}

func (s *RecordService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
