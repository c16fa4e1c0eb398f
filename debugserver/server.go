package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the debug routes. It starts no goroutines, so it can be
// served from httptest.
func NewRouter(hub *Hub, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		s := hub.Latest()
		if s == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s); err != nil {
			log.Printf("debugserver: encode snapshot: %v", err)
		}
	})
	r.Get("/frame.png", func(w http.ResponseWriter, r *http.Request) {
		s := hub.Latest()
		if s == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		scale := 1.0
		if raw := r.URL.Query().Get("scale"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v <= 0 || v > 4 {
				http.Error(w, "scale must be in (0, 4]", http.StatusBadRequest)
				return
			}
			scale = v
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, RenderFrame(s, scale)); err != nil {
			log.Printf("debugserver: encode frame: %v", err)
		}
	})
	r.Get("/ws", hub.handleWebSocket)
	return r
}

// Server runs the debug router and the hub's broadcast loop.
type Server struct {
	Hub *Hub

	http   *http.Server
	cancel context.CancelFunc
}

func NewServer(addr string, hub *Hub, gatherer prometheus.Gatherer) *Server {
	return &Server{
		Hub: hub,
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(hub, gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start listens in the background. Listen errors other than a clean
// shutdown are logged.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.Hub.Run(ctx)
	go func() {
		log.Printf("debugserver: listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("debugserver: %v", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.http.Shutdown(ctx)
}
