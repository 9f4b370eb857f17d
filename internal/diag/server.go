package diag

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shashidharbabu/aerive-client/pkg/config"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
)

// Server is the local health/metrics listener for the client process.
type Server struct {
	srv  *http.Server
	logg *logger.Logger
}

// NewServer wires the diagnostics routes onto a chi router.
func NewServer(cfg config.DiagConfig, registry *prometheus.Registry, logg *logger.Logger) *Server {
	router := chi.NewRouter()
	router.Get("/healthz", handleHealthz)
	if registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logg: logg,
	}
}

// Start serves until Shutdown; it returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "addr", s.srv.Addr), "diagnostics listener starting")
	}
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
