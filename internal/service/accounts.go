// accounts.go — регистрация и вход сотрудников панели.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bigkaa/fichas-admin/internal/auth"
	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/repository"
)

const (
	msgMissingData   = "Faltan datos obligatorios."
	msgDuplicate     = "Usuario o correo ya registrado."
	msgUserNotFound  = "Usuario no encontrado"
	msgWrongPassword = "Contraseña incorrecta"
)

// RegisterInput — данные формы регистрации.
type RegisterInput struct {
	Nombre  string
	Correo  string
	Usuario string
	Clave   string
	// Confirmar — повтор пароля; пусто — не проверяется
	Confirmar string
	// Codigo — институциональный код
	Codigo string
}

// AccountService — учётные записи и выпуск токенов.
type AccountService struct {
	repo        repository.AccountRepository
	issuer      *auth.Issuer
	code        string
	emailDomain string
	cost        int
	logger      *slog.Logger
}

// NewAccountService создаёт AccountService.
// emailDomain — обязательный суффикс e-mail; пусто — без проверки.
func NewAccountService(
	repo repository.AccountRepository,
	issuer *auth.Issuer,
	registrationCode string,
	emailDomain string,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		repo:        repo,
		issuer:      issuer,
		code:        registrationCode,
		emailDomain: strings.ToLower(emailDomain),
		cost:        bcrypt.DefaultCost,
		logger:      logger.With(slog.String("component", "account_service")),
	}
}

// Register создаёт учётную запись после проверки институционального кода.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Correo = strings.TrimSpace(in.Correo)
	in.Usuario = strings.TrimSpace(in.Usuario)
	if in.Nombre == "" || in.Correo == "" || in.Usuario == "" || in.Clave == "" || in.Codigo == "" {
		return nil, newError(ErrValidation, msgMissingData)
	}
	if in.Codigo != s.code {
		return nil, newError(ErrValidation, "Código especial incorrecto")
	}
	return s.create(ctx, in)
}

// CreateAdmin создаёт учётную запись без институционального кода.
// Используется командой create-admin для первой учётной записи.
func (s *AccountService) CreateAdmin(ctx context.Context, nombre, correo, usuario, clave string) (*model.Account, error) {
	in := RegisterInput{
		Nombre:  strings.TrimSpace(nombre),
		Correo:  strings.TrimSpace(correo),
		Usuario: strings.TrimSpace(usuario),
		Clave:   clave,
	}
	if in.Nombre == "" || in.Correo == "" || in.Usuario == "" || in.Clave == "" {
		return nil, newError(ErrValidation, msgMissingData)
	}
	return s.create(ctx, in)
}

func (s *AccountService) create(ctx context.Context, in RegisterInput) (*model.Account, error) {
	if s.emailDomain != "" && !strings.HasSuffix(strings.ToLower(in.Correo), s.emailDomain) {
		return nil, newError(ErrValidation, "El correo debe pertenecer al dominio "+s.emailDomain)
	}
	if in.Confirmar != "" && in.Confirmar != in.Clave {
		return nil, newError(ErrValidation, "Las contraseñas no coinciden")
	}

	exists, err := s.repo.Exists(ctx, in.Usuario, in.Correo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(ErrConflict, msgDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Clave), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, newError(ErrValidation, "La contraseña no puede superar 72 bytes")
		}
		return nil, fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	a := &model.Account{
		NombreCompleto: in.Nombre,
		Correo:         in.Correo,
		Usuario:        in.Usuario,
		ClaveHash:      string(hash),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newError(ErrConflict, msgDuplicate)
		}
		return nil, err
	}

	s.logger.Info("Учётная запись создана",
		slog.Int64("id", a.ID),
		slog.String("usuario", a.Usuario),
	)
	return a, nil
}

// Login проверяет пароль и выпускает токен.
func (s *AccountService) Login(ctx context.Context, usuario, clave string) (string, *model.Account, error) {
	usuario = strings.TrimSpace(usuario)
	if usuario == "" {
		return "", nil, newError(ErrUnauthorized, msgUserNotFound)
	}

	a, err := s.repo.GetByUsuario(ctx, usuario)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, newError(ErrUnauthorized, msgUserNotFound)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.ClaveHash), []byte(clave)); err != nil {
		s.logger.Debug("Неверный пароль", slog.String("usuario", usuario))
		return "", nil, newError(ErrUnauthorized, msgWrongPassword)
	}

	token, err := s.issuer.Issue(a)
	if err != nil {
		return "", nil, err
	}
	return token, a, nil
}
