package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server expone /health y /metrics en un listener separado del API principal.
type Server struct {
	srv *http.Server
}

// NewServer construye el servidor de observabilidad.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

// Start bloquea sirviendo hasta que el listener se cierre.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown apaga el servidor respetando el contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
