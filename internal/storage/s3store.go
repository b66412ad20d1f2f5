package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Options — параметры подключения к S3-совместимому хранилищу.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// S3Store — хранилище файлов в бакете MinIO/S3.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store создаёт клиент MinIO и при необходимости создаёт бакет.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", opts.Bucket, err)
		}
	}

	return &S3Store{client: client, bucket: opts.Bucket}, nil
}

// Save загружает объект под сгенерированным именем.
// size = -1 означает неизвестный размер (multipart upload).
func (s *S3Store) Save(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (string, error) {
	name := generateStorageName(originalName, contentType)
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки объекта %s: %w", name, err)
	}
	return name, nil
}

// Delete удаляет объект. S3 не возвращает ошибку для отсутствующего ключа.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("ошибка удаления объекта %s: %w", name, err)
	}
	return nil
}

// Open возвращает объект для чтения.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, *Info, error) {
	if err := validName(name); err != nil {
		return nil, nil, err
	}

	st, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("ошибка получения информации об объекте %s: %w", name, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка чтения объекта %s: %w", name, err)
	}

	return obj, &Info{
		Size:        st.Size,
		ContentType: servedType(st.ContentType),
		ModTime:     st.LastModified,
	}, nil
}
