// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrUnauthorized — неверные учётные данные.
	ErrUnauthorized = errors.New("ошибка аутентификации")
	// ErrStorage — сбой записи в БД или файловое хранилище.
	ErrStorage = errors.New("ошибка хранилища")
	// ErrFileCleanup — строка удалена, но файл удалить не удалось.
	ErrFileCleanup = errors.New("ошибка удаления файла")
)

// Error — ошибка сервиса с сообщением для клиента.
// Kind — одна из sentinel-ошибок выше, errors.Is работает через Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// PublicMessage возвращает сообщение для клиента из цепочки ошибок.
// Если сообщения нет — возвращает fallback.
func PublicMessage(err error, fallback string) string {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
