// Пакет errors — JSON-ответы с ошибками.
//
// Два формата тела:
//   - полный: {"success": false, "error": "..."} — фичи, статистика, 404 маршрута;
//   - краткий: {"error": "..."} — авторизация, регистрация, вход, новости, удаление фичи.
//
// Клиенты проверяют наличие ключа error, поэтому оба формата допустимы.
package errors

import (
	"encoding/json"
	"net/http"
)

// Стандартные сообщения.
const (
	MsgInternal      = "Error interno del servidor"
	MsgRouteNotFound = "Ruta no encontrada"
)

// errorBody — полный формат.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Mensaje string `json:"mensaje,omitempty"`
}

// shortBody — краткий формат.
type shortBody struct {
	Error string `json:"error"`
}

func write(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError записывает ошибку в полном формате.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, errorBody{Error: message})
}

// WriteErrorWithMessage записывает ошибку в полном формате с пояснением.
func WriteErrorWithMessage(w http.ResponseWriter, statusCode int, message, mensaje string) {
	write(w, statusCode, errorBody{Error: message, Mensaje: mensaje})
}

// WriteShort записывает ошибку в кратком формате.
func WriteShort(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, shortBody{Error: message})
}

// --- Полный формат ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// InternalError — 500 внутренняя ошибка без подробностей.
func InternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, MsgInternal)
}

// RouteNotFound — 404 для неизвестного маршрута.
func RouteNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, MsgRouteNotFound)
}

// --- Краткий формат ---

// BadRequest — 400.
func BadRequest(w http.ResponseWriter, message string) {
	WriteShort(w, http.StatusBadRequest, message)
}

// Unauthorized — 401 требуется аутентификация.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteShort(w, http.StatusUnauthorized, message)
}

// Forbidden — 403 токен отклонён.
func Forbidden(w http.ResponseWriter, message string) {
	WriteShort(w, http.StatusForbidden, message)
}

// Conflict — 409 конфликт (дублирующийся ресурс).
func Conflict(w http.ResponseWriter, message string) {
	WriteShort(w, http.StatusConflict, message)
}

// Internal — 500 в кратком формате.
func Internal(w http.ResponseWriter, message string) {
	WriteShort(w, http.StatusInternalServerError, message)
}
