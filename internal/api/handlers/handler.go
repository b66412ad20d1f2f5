// Пакет handlers — HTTP-обработчики API панели.
// Обработчики разбирают запрос, делегируют в сервисный слой
// и переводят ошибки сервиса в JSON-ответы.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bigkaa/fichas-admin/internal/api/middleware"
)

// maxJSONBody — предел тела JSON-запросов.
const maxJSONBody = 1 << 20

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parseID разбирает положительный целочисленный id из пути.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// parsePositive разбирает необязательный положительный параметр запроса.
// Пустое значение — def.
func parsePositive(s string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// principalID возвращает id учётной записи из проверенного токена.
func principalID(r *http.Request) int64 {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return 0
	}
	return claims.ID
}

// formatTime — формат дат в ответах.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
