// Package http exposes the dashboard engine over a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"carteira/internal/services"
)

type Server struct {
	http.Server

	dashboard   *services.DashboardService
	reports     *services.ReportService
	rateLimiter *rateLimiter
}

func NewServer(addr string, dashboard *services.DashboardService, reports *services.ReportService) *Server {
	s := &Server{
		dashboard:   dashboard,
		reports:     reports,
		rateLimiter: newRateLimiter(),
	}

	s.Server = http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(securityHeaders)
	r.Use(s.rateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", s.handleSession)
		r.Post("/dashboard/metrics", s.handleDashboardMetrics)
		r.Post("/dashboard/refresh", s.handleDashboardRefresh)
		r.Get("/clients", s.handleClients)
		r.Post("/reports/{kind}", s.handleGenerateReport)
	})

	return r
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.allow(r.RemoteAddr) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the rate limiter alongside the embedded http.Server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.stop()
	return s.Server.Shutdown(ctx)
}
