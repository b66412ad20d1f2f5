package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/fichas-admin/internal/auth"
	"github.com/bigkaa/fichas-admin/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubParser — TokenParser, принимающий только токен "good".
type stubParser struct{}

func (stubParser) Parse(token string) (*auth.Claims, error) {
	if token == "good" {
		return &auth.Claims{ID: 5, Usuario: "aperez"}, nil
	}
	return nil, errors.New("bad token")
}

func protected(t *testing.T, parser TokenParser) (http.Handler, *bool) {
	t.Helper()
	called := false
	h := NewJWTAuth(parser, testLogger()).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.ID != 5 {
			t.Errorf("claims = %v, ok = %v", claims, ok)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &called
}

func TestJWTAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"нет заголовка", "", http.StatusUnauthorized, MsgTokenMissing},
		{"Bearer без токена", "Bearer ", http.StatusUnauthorized, MsgTokenMissing},
		{"неверная схема", "Basic good", http.StatusForbidden, MsgTokenInvalid},
		{"невалидный токен", "Bearer bad", http.StatusForbidden, MsgTokenInvalid},
		{"валидный токен", "Bearer good", http.StatusNoContent, ""},
		{"схема в нижнем регистре", "bearer good", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, called := protected(t, stubParser{})
			req := httptest.NewRequest(http.MethodGet, "/api/noticias", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, ожидается %d", rec.Code, tt.wantStatus)
			}
			if tt.wantError != "" {
				if *called {
					t.Error("обработчик не должен вызываться")
				}
				if !strings.Contains(rec.Body.String(), tt.wantError) {
					t.Errorf("тело = %s, ожидается %q", rec.Body.String(), tt.wantError)
				}
			}
		})
	}
}

func TestJWTAuth_RealIssuer(t *testing.T) {
	iss, err := auth.NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	token, err := iss.Issue(&model.Account{ID: 5, Usuario: "aperez"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h, called := protected(t, iss)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent || !*called {
		t.Errorf("status = %d, called = %v", rec.Code, *called)
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := ClaimsFromContext(req.Context()); ok {
		t.Error("claims не должны находиться в пустом контексте")
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("любой origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://panel.local")
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(next).ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, ожидается *", got)
		}
	})

	t.Run("список origins", func(t *testing.T) {
		h := CORS([]string{"http://a.local"})
		for origin, want := range map[string]string{"http://a.local": "http://a.local", "http://b.local": ""} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", origin)
			rec := httptest.NewRecorder()
			h(next).ServeHTTP(rec, req)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != want {
				t.Errorf("origin %s: Allow-Origin = %q, ожидается %q", origin, got, want)
			}
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/fichas/laptops", nil)
		req.Header.Set("Origin", "http://panel.local")
		req.Header.Set("Access-Control-Request-Method", "DELETE")
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, ожидается 204", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
			t.Error("Authorization должен быть разрешён")
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("abc"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/x", nil))

	out := buf.String()
	for _, want := range []string{"level=WARN", "status=404", "bytes=3", "path=/api/x"} {
		if !strings.Contains(out, want) {
			t.Errorf("лог не содержит %q: %s", want, out)
		}
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/api/fichas/{tabla}/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fichas/laptops/7", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/health/live", "/health/live"},
		{"/api/fichas/laptops", "/api/fichas/{tabla}"},
		{"/api/fichas/laptops/12", "/api/fichas/{tabla}/{id}"},
		{"/api/fichas/canes/antidrogas", "/api/fichas/{group}/{slug}"},
		{"/img/perro_1.png", "/img/{name}"},
		{"/api/catalogo/golden", "/api/catalogo/{id}"},
		{"/wp-admin/setup.php", "other"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидается %q", tt.in, got, tt.want)
		}
	}
}
