package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/api/middleware"
	"github.com/bigkaa/fichas-admin/internal/service"
)

// AccountsHandler — /api/registro и /api/login. Ошибки в кратком формате.
type AccountsHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAccountsHandler создаёт обработчик учётных записей.
func NewAccountsHandler(accounts *service.AccountService, logger *slog.Logger) *AccountsHandler {
	return &AccountsHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "accounts_handler")),
	}
}

// registerRequest — тело запроса регистрации.
type registerRequest struct {
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
	Usuario   string `json:"usuario"`
	Clave     string `json:"clave"`
	Confirmar string `json:"confirmar"`
	Codigo    string `json:"codigo"`
}

// loginRequest — тело запроса входа.
type loginRequest struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
}

// decodeBody читает JSON или форму в dst.
// Для формы fromForm заполняет dst из r.Form.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, fromForm func()) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxJSONBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}
		fromForm()
		return nil
	default:
		return json.NewDecoder(r.Body).Decode(dst)
	}
}

// Register — POST /api/registro.
func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeBody(w, r, &req, func() {
		req = registerRequest{
			Nombre:    r.FormValue("nombre"),
			Correo:    r.FormValue("correo"),
			Usuario:   r.FormValue("usuario"),
			Clave:     r.FormValue("clave"),
			Confirmar: r.FormValue("confirmar"),
			Codigo:    r.FormValue("codigo"),
		}
	})
	if err != nil {
		apierrors.BadRequest(w, "Cuerpo de la solicitud inválido.")
		return
	}

	_, err = h.accounts.Register(r.Context(), service.RegisterInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.BadRequest(w, service.PublicMessage(err, "Datos inválidos."))
		case errors.Is(err, service.ErrConflict):
			apierrors.Conflict(w, service.PublicMessage(err, "Usuario o correo ya registrado."))
		default:
			h.logger.Error("Ошибка регистрации", slog.String("error", err.Error()))
			apierrors.Internal(w, "Error interno del servidor.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"mensaje": "Usuario registrado exitosamente."})
}

// Login — POST /api/login.
func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeBody(w, r, &req, func() {
		req = loginRequest{Usuario: r.FormValue("usuario"), Clave: r.FormValue("clave")}
	})
	if err != nil {
		apierrors.BadRequest(w, "Cuerpo de la solicitud inválido.")
		return
	}

	token, account, err := h.accounts.Login(r.Context(), req.Usuario, req.Clave)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			middleware.LoginAttempt("rejected")
			apierrors.Unauthorized(w, service.PublicMessage(err, "Credenciales inválidas"))
			return
		}
		middleware.LoginAttempt("error")
		h.logger.Error("Ошибка входа", slog.String("error", err.Error()))
		apierrors.Internal(w, "Error interno del servidor.")
		return
	}

	middleware.LoginAttempt("ok")
	h.logger.Info("Вход выполнен", slog.String("usuario", account.Usuario))
	writeJSON(w, http.StatusOK, map[string]string{
		"mensaje": "Inicio de sesión exitoso",
		"token":   token,
	})
}
