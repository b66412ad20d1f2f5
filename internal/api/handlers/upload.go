// upload.go — разбор multipart-форм с изображением.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/bigkaa/fichas-admin/internal/service"
	"github.com/bigkaa/fichas-admin/internal/storage"
)

const (
	// formOverhead — запас на текстовые поля формы сверх размера файла.
	formOverhead = 1 << 20
	// formMemory — часть формы, которая держится в памяти.
	formMemory = 8 << 20
)

var (
	errTooLarge = errors.New("файл слишком большой")
	errNotImage = errors.New("файл не является изображением")
	// errBadJSON — тело не является плоским JSON-объектом.
	errBadJSON = errors.New("некорректное тело JSON")
	// errContentType — тело не форма и не JSON.
	errContentType = errors.New("неподдерживаемый тип тела запроса")
)

// uploadParser разбирает форму и проверяет загружаемое изображение.
type uploadParser struct {
	maxSize int64
	logger  *slog.Logger
}

// tooLargeMessage — сообщение о превышении размера.
func (p uploadParser) tooLargeMessage() string {
	return fmt.Sprintf("El archivo es demasiado grande. Máximo %dMB permitido.", p.maxSize>>20)
}

// message переводит ошибку разбора в сообщение для клиента.
func (p uploadParser) message(err error) string {
	switch {
	case errors.Is(err, errTooLarge):
		return p.tooLargeMessage()
	case errors.Is(err, errNotImage):
		return "Solo se permiten archivos de imagen"
	case errors.Is(err, errBadJSON):
		return "Cuerpo JSON inválido"
	case errors.Is(err, errContentType):
		return "Tipo de contenido no soportado"
	default:
		if p.logger != nil {
			p.logger.Warn("Ошибка разбора формы", slog.String("error", err.Error()))
		}
		return "Error al procesar el formulario"
	}
}

// parseForm читает тело формы с ограничением размера.
// Поддерживаются multipart/form-data, application/x-www-form-urlencoded
// и плоский JSON-объект. Значения попадают в r.PostForm.
// Вызывающий обязан вызвать cleanup.
func (p uploadParser) parseForm(w http.ResponseWriter, r *http.Request) (cleanup func(), err error) {
	cleanup = func() {}
	r.Body = http.MaxBytesReader(w, r.Body, p.maxSize+formOverhead)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		err = r.ParseMultipartForm(formMemory)
		if errors.Is(err, http.ErrNotMultipart) {
			err = r.ParseForm()
		}
	case "application/json":
		err = jsonForm(r)
	default:
		return cleanup, errContentType
	}
	if r.MultipartForm != nil {
		form := r.MultipartForm
		cleanup = func() { _ = form.RemoveAll() }
	}
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return cleanup, errTooLarge
		}
		return cleanup, err
	}
	return cleanup, nil
}

// jsonForm переносит плоский JSON-объект в r.PostForm.
// Числа и логические значения приводятся к строке, null — поле отсутствует.
func jsonForm(r *http.Request) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return errBadJSON
	}

	form := make(url.Values, len(body))
	for k, v := range body {
		switch v := v.(type) {
		case nil:
		case string:
			form.Set(k, v)
		case json.Number:
			form.Set(k, v.String())
		case bool:
			form.Set(k, strconv.FormatBool(v))
		default:
			return fmt.Errorf("%w: поле %s", errBadJSON, k)
		}
	}
	r.PostForm = form
	r.Form = form
	return nil
}

// file возвращает загруженное изображение из поля field.
// Нет файла — nil, nil. Вызывающий закрывает возвращённый closer.
func (p uploadParser) file(r *http.Request, field string) (*service.Upload, io.Closer, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}

	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	up, err := p.check(f, header)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return up, f, nil
}

// check проверяет размер, заявленный и фактический тип файла.
func (p uploadParser) check(f multipart.File, header *multipart.FileHeader) (*service.Upload, error) {
	if header.Size > p.maxSize {
		return nil, errTooLarge
	}

	declared := header.Header.Get("Content-Type")
	if !strings.HasPrefix(declared, "image/") {
		return nil, errNotImage
	}

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if !storage.ServableImage(detected.String()) {
		return nil, errNotImage
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	return &service.Upload{
		Body:        f,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: detected.String(),
	}, nil
}
