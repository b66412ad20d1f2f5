// Пакет storage — хранение загруженных изображений.
// Записи БД ссылаются на файл только по имени, без пути.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotFound — файл отсутствует в хранилище.
var ErrNotFound = errors.New("файл не найден")

// ErrInvalidName — имя файла содержит путь или недопустимые символы.
var ErrInvalidName = errors.New("недопустимое имя файла")

// Store — хранилище файлов.
type Store interface {
	// Save сохраняет содержимое под сгенерированным именем и возвращает его.
	Save(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error)
	// Delete удаляет файл. Отсутствие файла не считается ошибкой.
	Delete(ctx context.Context, name string) error
	// Open открывает файл для чтения. Вызывающий обязан закрыть reader.
	Open(ctx context.Context, name string) (io.ReadCloser, *Info, error)
}

// Info — метаданные сохранённого файла.
type Info struct {
	Size        int64
	ContentType string
	ModTime     time.Time
}

// generateStorageName генерирует имя файла для хранения.
// Формат: {name}_{timestamp}_{uuid8}{ext}
// Пример: malinois_20260221150405_a1b2c3d4.png
// Расширение берётся из проверенного типа содержимого, а не из имени клиента.
func generateStorageName(originalName, contentType string) string {
	base := filepath.Base(originalName)
	name := sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	if r := []rune(name); len(r) > 50 {
		name = string(r[:50])
	}

	ts := time.Now().UTC().Format("20060102150405")
	uid := uuid.New().String()[:8]

	return fmt.Sprintf("%s_%s_%s%s", name, ts, uid, imageExtension(contentType))
}

// imageExtension возвращает расширение для типа изображения.
// Для прочих типов — пустая строка.
func imageExtension(contentType string) string {
	if !ServableImage(contentType) {
		return ""
	}
	if m := mimetype.Lookup(contentType); m != nil {
		return m.Extension()
	}
	return ""
}

// ServableImage сообщает, можно ли отдавать содержимое как изображение.
// SVG исключён: он может содержать скрипты.
func ServableImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") &&
		!strings.HasPrefix(contentType, "image/svg")
}

// servedType возвращает Content-Type для отдачи клиенту.
func servedType(contentType string) string {
	if ServableImage(contentType) {
		return contentType
	}
	return "application/octet-stream"
}

// sanitize оставляет только буквы (включая латиницу с диакритикой),
// цифры, дефис и подчёркивание.
func sanitize(s string) string {
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' ||
			(r >= 0x00C0 && r <= 0x00FF && r != 0x00D7 && r != 0x00F7) { // Latin-1: á, é, ñ, ü...
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "file"
	}
	return result.String()
}

// validName проверяет, что имя не выходит за пределы хранилища.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
