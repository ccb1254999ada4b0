package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/optics-lab/optics/pkg/usecase"
	"github.com/optics-lab/optics/pkg/utils/logging"
)

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	syncToken string
}

type Options func(*Server)

// WithSyncToken protects POST /api/sync with a shared bearer token.
// Empty leaves the endpoint open.
func WithSyncToken(token string) Options {
	return func(s *Server) {
		s.syncToken = token
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.projectsHandler)
		r.Get("/dashboard", s.dashboardHandler)
		r.Get("/velocity", s.velocityHandler)
		r.Get("/burndown", s.burndownHandler)
		r.Get("/raid", s.raidHandler)
		r.Get("/tree", s.treeHandler)
		r.Get("/timeline", s.timelineHandler)
		r.Get("/watchlist", s.watchListHandler)
		r.Get("/report/{project}", s.reportHandler)

		r.With(s.syncAuth).Post("/sync", s.syncHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck // header already committed
}

// syncAuth checks the shared token on the sync trigger when one is
// configured.
func (s *Server) syncAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.syncToken != "" && r.Header.Get("Authorization") != "Bearer "+s.syncToken {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
