package handlers

import (
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/service"
)

// StatsHandler — GET /api/estadisticas.
type StatsHandler struct {
	stats  *service.StatsService
	logger *slog.Logger
}

// NewStatsHandler создаёт обработчик статистики.
func NewStatsHandler(stats *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger.With(slog.String("component", "stats_handler")),
	}
}

// Get отдаёт количество записей по таблицам и сводку по группам.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Get(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения статистики", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	resumen := make(map[string]int64, len(st.Groups)+1)
	resumen["total_fichas"] = st.Total
	for g, n := range st.Groups {
		resumen[string(g)] = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"detallado": st.Detallado,
			"resumen":   resumen,
		},
	})
}
