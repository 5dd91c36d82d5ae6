// Package web serves the device status page and the buzzer endpoint.
package web

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/sweeney/pippo/internal/status"
)

// Buzzer sounds the buzzer once. *gpio.Pulser satisfies it.
type Buzzer interface {
	Pulse() error
}

// Server serves the status page over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	buzzer     Buzzer
}

// New creates a Server that reads state from tracker. buzzer may be nil when
// no buzzer is fitted; /buzz then answers 503.
func New(addr string, tracker *status.Tracker, buzzer Buzzer) *Server {
	s := &Server{tracker: tracker, buzzer: buzzer}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/buzz", s.handleBuzz)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, s.tracker.Snapshot())
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(s.tracker.Snapshot()))
}

func (s *Server) handleBuzz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.buzzer == nil {
		http.Error(w, "no buzzer fitted", http.StatusServiceUnavailable)
		return
	}
	if err := s.buzzer.Pulse(); err != nil {
		log.Printf("web: buzz failed: %v", err)
		http.Error(w, "buzz failed", http.StatusInternalServerError)
		return
	}
	s.tracker.RecordBuzz()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(buzzHTML))
}
