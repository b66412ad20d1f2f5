package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/fichas-admin/internal/domain/model"
)

// AccountRepository — доступ к таблице usuarios_admin.
type AccountRepository interface {
	// Create создаёт учётную запись; дубликат usuario/correo — ErrConflict.
	Create(ctx context.Context, a *model.Account) error
	// GetByUsuario возвращает учётную запись по логину.
	GetByUsuario(ctx context.Context, usuario string) (*model.Account, error)
	// Exists проверяет, занят ли логин или e-mail.
	Exists(ctx context.Context, usuario, correo string) (bool, error)
}

type accountRepo struct {
	db DBTX
}

// NewAccountRepository создаёт репозиторий учётных записей.
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO usuarios_admin (nombre_completo, correo, usuario, clave)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fecha_creacion`

	err := r.db.QueryRow(ctx, query, a.NombreCompleto, a.Correo, a.Usuario, a.ClaveHash).
		Scan(&a.ID, &a.FechaCreacion)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: логин или e-mail уже зарегистрирован", ErrConflict)
		}
		return fmt.Errorf("ошибка создания учётной записи: %w", err)
	}
	return nil
}

func (r *accountRepo) GetByUsuario(ctx context.Context, usuario string) (*model.Account, error) {
	query := `
		SELECT id, nombre_completo, correo, usuario, clave, fecha_creacion
		FROM usuarios_admin
		WHERE usuario = $1`

	a := &model.Account{}
	err := r.db.QueryRow(ctx, query, usuario).Scan(
		&a.ID, &a.NombreCompleto, &a.Correo, &a.Usuario, &a.ClaveHash, &a.FechaCreacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения учётной записи: %w", err)
	}
	return a, nil
}

func (r *accountRepo) Exists(ctx context.Context, usuario, correo string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM usuarios_admin
			WHERE usuario = $1 OR lower(correo) = lower($2)
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, usuario, correo).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки учётной записи: %w", err)
	}
	return exists, nil
}
