package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"worship/pkg/engine/logger"
)

const (
	// StreamInterval is how often /debug/ws pushes a snapshot.
	StreamInterval = 100 * time.Millisecond

	writeTimeout    = time.Second
	shutdownTimeout = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type handlers struct {
	pub *Publisher
	log *logrus.Entry
}

// NewRouter constructs the debug HTTP router. It starts no goroutines.
func NewRouter(pub *Publisher) *chi.Mux {
	h := &handlers{pub: pub, log: logger.For("debug")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: h.log, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Route("/debug", func(r chi.Router) {
		r.Get("/snapshot", h.handleSnapshot)
		r.Get("/map", h.handleMap)
		r.Get("/ws", h.handleStream)
	})
	return r
}

func (h *handlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.pub.Latest()); err != nil {
		h.log.WithError(err).Warn("Failed to encode snapshot")
	}
}

func (h *handlers) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	text := h.pub.Map()
	if text == "" {
		http.Error(w, "no map published yet", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte(text))
}

// handleStream pushes the latest snapshot every StreamInterval until the
// client goes away.
func (h *handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reads only detect the close; clients send nothing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(StreamInterval)
	defer ticker.Stop()

	send := func() bool {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(h.pub.Latest()); err != nil {
			h.log.WithError(err).Debug("WebSocket client dropped")
			return false
		}
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}

// Server serves the debug router on one address.
type Server struct {
	http *http.Server
	ln   net.Listener
	log  *logrus.Entry
}

// Listen binds addr and returns a server ready to Serve.
func Listen(addr string, pub *Publisher) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		http: &http.Server{
			Handler:           NewRouter(pub),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:  ln,
		log: logger.For("debug"),
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve handles requests until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.http.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", s.Addr().String()).Info("Debug server listening")
	if err := s.http.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
