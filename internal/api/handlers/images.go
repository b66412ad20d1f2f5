package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/storage"
)

// ImagesHandler отдаёт сохранённые изображения (GET /img/{name}).
type ImagesHandler struct {
	store  storage.Store
	logger *slog.Logger
}

// NewImagesHandler создаёт обработчик изображений.
func NewImagesHandler(store storage.Store, logger *slog.Logger) *ImagesHandler {
	return &ImagesHandler{
		store:  store,
		logger: logger.With(slog.String("component", "images_handler")),
	}
}

// Serve отдаёт файл. Неизвестное или недопустимое имя — 404.
func (h *ImagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, info, err := h.store.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			apierrors.NotFound(w, "Imagen no encontrada")
			return
		}
		h.logger.Error("Ошибка чтения изображения",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w)
		return
	}
	defer rc.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'")
	w.Header().Set("Content-Type", info.ContentType)

	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, info.ModTime, rs)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Debug("Передача изображения прервана",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
}
