package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xela07ax/snortview/internal/console/handler"
	"github.com/xela07ax/snortview/internal/domain"
	"github.com/xela07ax/snortview/internal/infra"
	"github.com/xela07ax/snortview/internal/infra/auth"
	"go.uber.org/zap"
)

// Handlers — обработчики бизнес-доменов
type Handlers struct {
	Auth      *handler.AuthHandler      // /api/v1/auth
	Alerts    *handler.AlertHandler     // /api/v1/alerts
	Dashboard *handler.DashboardHandler // /api/v1/dashboard
	Users     *handler.UserHandler      // /api/v1/users, /api/v1/register
	DBConfig  *handler.DBConfigHandler  // /api/v1/database-config
	Audit     *handler.AuditHandler     // /api/v1/audit
}

type ConsoleServer struct {
	router *chi.Mux
	logger *zap.Logger

	// Проверка токена (RS256) и живой сессии, реализуется AuthService
	authValidator auth.TokenValidator

	metrics  *infra.Metrics
	gatherer prometheus.Gatherer
	h        Handlers
}

// NewConsoleServer собирает роутер API со всеми зависимостями
func NewConsoleServer(
	logger *zap.Logger,
	validator auth.TokenValidator,
	metrics *infra.Metrics,
	gatherer prometheus.Gatherer,
	h Handlers,
) *ConsoleServer {
	s := &ConsoleServer{
		router:        chi.NewRouter(),
		logger:        logger.Named("console-api"),
		authValidator: validator,
		metrics:       metrics,
		gatherer:      gatherer,
		h:             h,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(infra.TracingMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// --- 2. ПУБЛИЧНЫЕ РОУТЫ ---
	r.Group(func(r chi.Router) {
		r.Post("/api/v1/auth/login", s.h.Auth.Login)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			jsonOK(w)
		})
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	})

	// --- 3. ЗАЩИЩЕННЫЙ ПЕРИМЕТР (токен + живая сессия) ---
	r.Group(func(r chi.Router) {
		r.Use(auth.NewMiddleware(s.authValidator, s.logger))

		r.Post("/api/v1/auth/logout", s.h.Auth.Logout)
		r.Get("/api/v1/auth/me", s.h.Auth.Me)

		r.Get("/api/v1/dashboard/stats", s.h.Dashboard.GetStats)

		r.Route("/api/v1/alerts", func(r chi.Router) {
			r.Get("/", s.h.Alerts.List)
			r.Get("/{id}", s.h.Alerts.Get)
		})

		r.Post("/api/v1/register", s.h.Users.Register)
		r.Route("/api/v1/users", func(r chi.Router) {
			r.Get("/", s.h.Users.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/status", s.h.Users.UpdateStatus)
				r.Delete("/", s.h.Users.Delete)
			})
		})

		// --- 4. Только для администратора ---
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(domain.RoleAdmin))

			r.Route("/api/v1/database-config", func(r chi.Router) {
				r.Get("/", s.h.DBConfig.Get)
				r.Put("/", s.h.DBConfig.Put)
				r.Post("/test", s.h.DBConfig.Test)
			})
			r.Get("/api/v1/audit", s.h.Audit.GetLogs)
		})
	})
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

func jsonOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
