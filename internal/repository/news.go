package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
)

// NewsRepository — доступ к таблице noticias.
type NewsRepository interface {
	// Insert добавляет новость и заполняет ID и FechaCreacion.
	Insert(ctx context.Context, n *model.NewsItem) error
	// Count возвращает количество новостей.
	Count(ctx context.Context) (int64, error)
	// Oldest возвращает самую старую новость (по дате, затем по id).
	Oldest(ctx context.Context) (*model.NewsItem, error)
	// Delete удаляет новость по id.
	Delete(ctx context.Context, id int64) error
	// ListRecent возвращает limit последних новостей, новые первыми.
	ListRecent(ctx context.Context, limit int) ([]*model.NewsItem, error)
}

type newsRepo struct {
	db DBTX
}

// NewNewsRepository создаёт репозиторий новостей.
func NewNewsRepository(db DBTX) NewsRepository {
	return &newsRepo{db: db}
}

func (r *newsRepo) Insert(ctx context.Context, n *model.NewsItem) error {
	query := `
		INSERT INTO noticias (titulo, contenido, imagen)
		VALUES ($1, $2, $3)
		RETURNING id, fecha_creacion`

	if err := r.db.QueryRow(ctx, query, n.Titulo, n.Contenido, n.Imagen).Scan(&n.ID, &n.FechaCreacion); err != nil {
		return fmt.Errorf("ошибка создания новости: %w", err)
	}
	return nil
}

func (r *newsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM noticias`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта новостей: %w", err)
	}
	return n, nil
}

func (r *newsRepo) Oldest(ctx context.Context) (*model.NewsItem, error) {
	query := `
		SELECT id, titulo, contenido, imagen, fecha_creacion
		FROM noticias
		ORDER BY fecha_creacion ASC, id ASC
		LIMIT 1`

	n := &model.NewsItem{}
	err := r.db.QueryRow(ctx, query).Scan(&n.ID, &n.Titulo, &n.Contenido, &n.Imagen, &n.FechaCreacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения старейшей новости: %w", err)
	}
	return n, nil
}

func (r *newsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM noticias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления новости: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *newsRepo) ListRecent(ctx context.Context, limit int) ([]*model.NewsItem, error) {
	query := `
		SELECT id, titulo, contenido, imagen, fecha_creacion
		FROM noticias
		ORDER BY fecha_creacion DESC, id DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения новостей: %w", err)
	}
	defer rows.Close()

	var result []*model.NewsItem
	for rows.Next() {
		n := &model.NewsItem{}
		if err := rows.Scan(&n.ID, &n.Titulo, &n.Contenido, &n.Imagen, &n.FechaCreacion); err != nil {
			return nil, fmt.Errorf("ошибка чтения новости: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
