// fichas.go — обработчики фичей: создание по категории, список, получение, удаление.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/api/middleware"
	"github.com/bigkaa/fichas-admin/internal/domain/model"
	"github.com/bigkaa/fichas-admin/internal/domain/schema"
	"github.com/bigkaa/fichas-admin/internal/service"
)

// FichasHandler — обработчики /api/fichas.
type FichasHandler struct {
	records *service.RecordService
	upload  uploadParser
	logger  *slog.Logger
}

// NewFichasHandler создаёт обработчик фичей.
// maxUpload — максимальный размер изображения в байтах.
func NewFichasHandler(records *service.RecordService, maxUpload int64, logger *slog.Logger) *FichasHandler {
	return &FichasHandler{
		records: records,
		upload:  uploadParser{maxSize: maxUpload, logger: logger},
		logger:  logger.With(slog.String("component", "fichas_handler")),
	}
}

// paginationResponse — метаданные страницы.
type paginationResponse struct {
	CurrentPage    int   `json:"current_page"`
	TotalPages     int   `json:"total_pages"`
	TotalRecords   int64 `json:"total_records"`
	RecordsPerPage int   `json:"records_per_page"`
}

// recordJSON разворачивает запись в плоский объект:
// служебные колонки, поля категории и данные владельца.
func recordJSON(rec *model.Record) map[string]any {
	out := make(map[string]any, len(rec.Values)+6)
	out["id"] = rec.ID
	out["usuario_id"] = rec.UsuarioID
	out["fecha_creacion"] = formatTime(rec.FechaCreacion)
	out["fecha_actualizacion"] = formatTime(rec.FechaActualizacion)
	for k, v := range rec.Values {
		out[k] = v
	}
	out["usuario_nombre"] = rec.UsuarioNombre
	out["usuario_email"] = rec.UsuarioEmail
	return out
}

// Create возвращает обработчик POST для категории c.
// Поля берутся из формы по описанию категории, владелец — из токена.
func (h *FichasHandler) Create(c schema.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cleanup, err := h.upload.parseForm(w, r)
		defer cleanup()
		if err != nil {
			apierrors.ValidationError(w, h.upload.message(err))
			return
		}

		values := make(map[string]string, len(c.Fields))
		for _, f := range c.ValueFields() {
			if v, ok := r.PostForm[f.Name]; ok && len(v) > 0 {
				values[f.Name] = v[0]
			}
		}

		var file *service.Upload
		if ff, ok := c.FileField(); ok {
			up, closer, err := h.upload.file(r, ff.Name)
			if err != nil {
				apierrors.ValidationError(w, h.upload.message(err))
				return
			}
			if closer != nil {
				defer closer.Close()
			}
			file = up
		}

		id, err := h.records.Save(r.Context(), c.Table, principalID(r), values, file)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrValidation):
				apierrors.ValidationError(w, service.PublicMessage(err, "Datos inválidos"))
			case errors.Is(err, service.ErrUnauthorized):
				apierrors.Forbidden(w, middleware.MsgTokenInvalid)
			default:
				apierrors.WriteErrorWithMessage(w, http.StatusInternalServerError,
					apierrors.MsgInternal, "No se pudo guardar la ficha")
			}
			return
		}

		middleware.RecordSaved(c.Table)
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"mensaje": "Ficha guardada exitosamente",
			"id":      id,
		})
	}
}

// List — GET /api/fichas/{tabla}?page&limit&search.
func (h *FichasHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, ok1 := parsePositive(q.Get("page"), service.DefaultPage)
	limit, ok2 := parsePositive(q.Get("limit"), service.DefaultLimit)
	if !ok1 || !ok2 {
		apierrors.ValidationError(w, "Parámetros de paginación inválidos")
		return
	}

	res, err := h.records.List(r.Context(), chi.URLParam(r, "tabla"), page, limit, q.Get("search"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, service.PublicMessage(err, "Tabla no válida"))
			return
		}
		h.logger.Error("Ошибка получения списка фичей",
			slog.String("tabla", chi.URLParam(r, "tabla")),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w)
		return
	}

	data := make([]map[string]any, 0, len(res.Items))
	for i := range res.Items {
		data = append(data, recordJSON(&res.Items[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"pagination": paginationResponse{
			CurrentPage:    res.Page,
			TotalPages:     res.TotalPages,
			TotalRecords:   res.Total,
			RecordsPerPage: res.Limit,
		},
	})
}

// Get — GET /api/fichas/{tabla}/{id}.
func (h *FichasHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		apierrors.ValidationError(w, "ID no válido")
		return
	}

	rec, err := h.records.Get(r.Context(), chi.URLParam(r, "tabla"), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, service.PublicMessage(err, "Tabla no válida"))
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, service.PublicMessage(err, "Ficha no encontrada"))
		default:
			h.logger.Error("Ошибка получения фичи",
				slog.String("tabla", chi.URLParam(r, "tabla")),
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
			apierrors.InternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    recordJSON(rec),
	})
}

// Delete — DELETE /api/fichas/{tabla}/{id}. Ответы в кратком формате.
func (h *FichasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "tabla")
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		apierrors.BadRequest(w, "ID no válido.")
		return
	}

	if err := h.records.Delete(r.Context(), table, id); err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.BadRequest(w, "Tabla no válida.")
			return
		}
		h.logger.Error("Ошибка удаления фичи",
			slog.String("tabla", table),
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		apierrors.Internal(w, "Error interno del servidor al eliminar la ficha.")
		return
	}

	middleware.RecordDeleted(table)
	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Ficha eliminada exitosamente."})
}
