// news.go — новости панели с ограничением количества хранимых записей.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/repository"
	"github.com/bigkaa/fichas-admin/internal/storage"
)

// NewsService — создание и чтение новостей.
//
// Перед вставкой самые старые новости вытесняются так, чтобы после
// вставки их осталось не больше limit. Последовательность
// count → evict → insert не атомарна: два параллельных создания могут
// временно превысить limit, следующее создание вытеснит лишнее.
type NewsService struct {
	repo   repository.NewsRepository
	store  storage.Store
	limit  int
	logger *slog.Logger
}

// NewNewsService создаёт NewsService. limit < 1 приводится к 1.
func NewNewsService(repo repository.NewsRepository, store storage.Store, limit int, logger *slog.Logger) *NewsService {
	if limit < 1 {
		limit = 1
	}
	return &NewsService{
		repo:   repo,
		store:  store,
		limit:  limit,
		logger: logger.With(slog.String("component", "news_service")),
	}
}

// Create сохраняет изображение, вытесняет старые новости и добавляет новую.
func (s *NewsService) Create(ctx context.Context, titulo, contenido string, image *Upload) (*model.NewsItem, error) {
	if strings.TrimSpace(titulo) == "" || strings.TrimSpace(contenido) == "" || image == nil {
		return nil, newError(ErrValidation, "Faltan datos obligatorios.")
	}

	name, err := s.store.Save(ctx, image.Body, image.Size, image.Filename, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: сохранение изображения: %v", ErrStorage, err)
	}

	if err := s.enforceRetention(ctx); err != nil {
		s.removeFile(ctx, name)
		return nil, err
	}

	item := &model.NewsItem{Titulo: titulo, Contenido: contenido, Imagen: &name}
	if err := s.repo.Insert(ctx, item); err != nil {
		s.removeFile(ctx, name)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info("Новость создана",
		slog.Int64("id", item.ID),
		slog.String("imagen", name),
	)
	return item, nil
}

// enforceRetention удаляет самые старые новости, пока их не станет limit-1.
func (s *NewsService) enforceRetention(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	for ; count >= int64(s.limit); count-- {
		oldest, err := s.repo.Oldest(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		if oldest.Imagen != nil && *oldest.Imagen != "" {
			s.removeFile(ctx, *oldest.Imagen)
		}

		if err := s.repo.Delete(ctx, oldest.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		s.logger.Info("Старая новость вытеснена", slog.Int64("id", oldest.ID))
	}
	return nil
}

// removeFile удаляет файл. Ошибка только логируется.
func (s *NewsService) removeFile(ctx context.Context, name string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), name); err != nil {
		s.logger.Warn("Не удалось удалить изображение новости",
			slog.String("file", name),
			slog.String("error", err.Error()),
		)
	}
}

// List возвращает последние новости, новые первыми.
func (s *NewsService) List(ctx context.Context) ([]*model.NewsItem, error) {
	items, err := s.repo.ListRecent(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.NewsItem{}
	}
	return items, nil
}
