package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
)

// ServerClock возвращает текущее время сервера БД.
type ServerClock func(ctx context.Context) (time.Time, error)

// TestDBHandler — GET /api/test-db.
type TestDBHandler struct {
	now    ServerClock
	logger *slog.Logger
}

// NewTestDBHandler создаёт обработчик проверки БД.
func NewTestDBHandler(now ServerClock, logger *slog.Logger) *TestDBHandler {
	return &TestDBHandler{now: now, logger: logger}
}

// Get отдаёт время сервера PostgreSQL.
func (h *TestDBHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.now(r.Context())
	if err != nil {
		h.logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		apierrors.Internal(w, "Error al conectar con PostgreSQL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"horaServidor": t.Format(time.RFC3339Nano)})
}
