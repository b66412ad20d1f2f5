package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/api/middleware"
	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/service"
)

// NewsHandler — обработчики /api/noticias. Ошибки в кратком формате.
type NewsHandler struct {
	news   *service.NewsService
	upload uploadParser
	logger *slog.Logger
}

// NewNewsHandler создаёт обработчик новостей.
func NewNewsHandler(news *service.NewsService, maxUpload int64, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		news:   news,
		upload: uploadParser{maxSize: maxUpload, logger: logger},
		logger: logger.With(slog.String("component", "news_handler")),
	}
}

// newsJSON — элемент списка новостей.
type newsJSON struct {
	ID            int64   `json:"id"`
	Titulo        string  `json:"titulo"`
	Contenido     string  `json:"contenido"`
	Imagen        *string `json:"imagen"`
	FechaCreacion string  `json:"fecha_creacion"`
}

func toNewsJSON(n *model.NewsItem) newsJSON {
	return newsJSON{
		ID:            n.ID,
		Titulo:        n.Titulo,
		Contenido:     n.Contenido,
		Imagen:        n.Imagen,
		FechaCreacion: formatTime(n.FechaCreacion),
	}
}

// Create — POST /api/noticias (multipart: titulo, contenido, imagen).
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	cleanup, err := h.upload.parseForm(w, r)
	defer cleanup()
	if err != nil {
		apierrors.BadRequest(w, h.upload.message(err))
		return
	}

	image, closer, err := h.upload.file(r, "imagen")
	if err != nil {
		apierrors.BadRequest(w, h.upload.message(err))
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	_, err = h.news.Create(r.Context(), r.PostFormValue("titulo"), r.PostFormValue("contenido"), image)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.BadRequest(w, service.PublicMessage(err, "Faltan datos obligatorios."))
			return
		}
		h.logger.Error("Ошибка создания новости", slog.String("error", err.Error()))
		apierrors.Internal(w, "Error al crear noticia.")
		return
	}

	middleware.NewsCreated()
	writeJSON(w, http.StatusCreated, map[string]string{"mensaje": "Noticia creada correctamente."})
}

// List — GET /api/noticias. Ответ — массив без обёртки.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.news.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения новостей", slog.String("error", err.Error()))
		apierrors.Internal(w, "Error al obtener noticias.")
		return
	}

	out := make([]newsJSON, 0, len(items))
	for _, n := range items {
		out = append(out, toNewsJSON(n))
	}
	writeJSON(w, http.StatusOK, out)
}
