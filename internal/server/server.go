// Пакет server — HTTP-сервер панели фичей с graceful shutdown.
// Без TLS: TLS termination выполняется на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/api/handlers"
	"github.com/bigkaa/fichas-admin/internal/api/middleware"
	"github.com/bigkaa/fichas-admin/internal/config"
	"github.com/bigkaa/fichas-admin/internal/domain/schema"
)

// Handlers — набор обработчиков, из которых собирается роутер.
type Handlers struct {
	Health   *handlers.HealthHandler
	Accounts *handlers.AccountsHandler
	Fichas   *handlers.FichasHandler
	Stats    *handlers.StatsHandler
	News     *handlers.NewsHandler
	Catalog  *handlers.CatalogHandler
	Images   *handlers.ImagesHandler
	TestDB   *handlers.TestDBHandler
}

// Server — HTTP-сервер панели.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными маршрутами и middleware.
func New(cfg *config.Config, logger *slog.Logger, registry *schema.Registry, h Handlers, jwtAuth *middleware.JWTAuth) *Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           NewRouter(cfg, logger, registry, h, jwtAuth),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает chi-роутер. Маршруты создания фичей
// строятся из реестра: по одному POST на категорию.
func NewRouter(cfg *config.Config, logger *slog.Logger, registry *schema.Registry, h Handlers, jwtAuth *middleware.JWTAuth) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NotFound(apierrors.RouteNotFound)
	r.MethodNotAllowed(apierrors.RouteNotFound)

	// Публичные маршруты
	r.Get("/health/live", h.Health.HealthLive)
	r.Get("/health/ready", h.Health.HealthReady)
	r.Get("/metrics", h.Health.GetMetrics)
	r.Get("/img/{name}", h.Images.Serve)
	r.Post("/api/login", h.Accounts.Login)
	r.Get("/api/catalogo", h.Catalog.List)
	r.Get("/api/catalogo/{id}", h.Catalog.Get)

	// Защищённые маршруты
	r.Group(func(r chi.Router) {
		r.Use(jwtAuth.Middleware())

		r.Post("/api/registro", h.Accounts.Register)
		r.Get("/api/test-db", h.TestDB.Get)
		r.Get("/api/estadisticas", h.Stats.Get)
		r.Post("/api/noticias", h.News.Create)
		r.Get("/api/noticias", h.News.List)

		r.Route("/api/fichas", func(r chi.Router) {
			for _, c := range registry.All() {
				r.Post(fmt.Sprintf("/%s/%s", c.Group, c.Slug), h.Fichas.Create(c))
			}
			r.Get("/{tabla}", h.Fichas.List)
			r.Get("/{tabla}/{id}", h.Fichas.Get)
			r.Delete("/{tabla}/{id}", h.Fichas.Delete)
		})
	})

	return r
}

// Run запускает сервер и ожидает отмены ctx (SIGINT, SIGTERM в main).
// После отмены выполняется graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Получен сигнал завершения")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
