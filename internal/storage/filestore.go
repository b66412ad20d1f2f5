package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// FileStore — хранилище файлов в локальной директории.
type FileStore struct {
	// dataDir — корневая директория хранения файлов (FT_UPLOAD_DIR)
	dataDir string
}

// NewFileStore создаёт FileStore. Создаёт директорию, если она не существует.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных %s: %w", dataDir, err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// Save записывает данные на диск.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (fs *FileStore) Save(_ context.Context, r io.Reader, _ int64, originalName, contentType string) (string, error) {
	storageName := generateStorageName(originalName, contentType)
	fullPath := filepath.Join(fs.dataDir, storageName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return storageName, nil
}

// Delete удаляет файл с диска. Возвращает nil, если файл уже не существует.
func (fs *FileStore) Delete(_ context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(fs.dataDir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла %s: %w", name, err)
	}
	return nil
}

// Open открывает файл для чтения.
// Тип определяется по содержимому файла, расширение не учитывается.
func (fs *FileStore) Open(_ context.Context, name string) (io.ReadCloser, *Info, error) {
	if err := validName(name); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(fs.dataDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("ошибка открытия файла %s: %w", name, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("ошибка получения информации о файле %s: %w", name, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	detected, err := mimetype.DetectReader(f)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("ошибка чтения файла %s: %w", name, err)
	}

	return f, &Info{
		Size:        st.Size(),
		ContentType: servedType(detected.String()),
		ModTime:     st.ModTime(),
	}, nil
}

// DataDir возвращает путь к директории данных.
func (fs *FileStore) DataDir() string {
	return fs.dataDir
}
