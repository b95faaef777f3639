// Package httpapi runs the JSON HTTP server that exposes the seller
// analytics and report endpoints.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vhoanghac/sellerdash/internal/apisrv/admin"
	"github.com/vhoanghac/sellerdash/internal/apisrv/seller"
	"github.com/vhoanghac/sellerdash/internal/auth"
	"github.com/vhoanghac/sellerdash/internal/dependency"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(a *auth.Auth, sellerSrv *seller.Server, adminSrv *admin.Server, repo dependency.Repository) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/seller", func(r chi.Router) {
		r.Use(a.Verifier())
		r.Use(a.Authenticator(auth.RoleSeller))
		r.Get("/analytics", sellerSrv.GetAnalytics)
		r.Get("/reports/export", sellerSrv.ExportReport)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(a.Verifier())
		r.Use(a.Authenticator(auth.RoleAdmin))
		r.Get("/overview", adminSrv.GetOverview)
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, a *auth.Auth, sellerSrv *seller.Server, adminSrv *admin.Server, repo dependency.Repository) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.router(a, sellerSrv, adminSrv, repo),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().Info(fmt.Sprintf("sellerdash new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().Info("http server returned")
		} else if err != nil {
			slog.Default().Error("http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(ctx)
}
