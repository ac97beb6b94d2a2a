// Package server exposes the property translator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/pricofy/property-translator/internal/domain"
)

// Translator is the service behind the HTTP endpoints.
type Translator interface {
	Translate(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// Server wraps the HTTP router and listener.
type Server struct {
	Router *mux.Router
	svc    Translator
	srv    *http.Server
}

// New builds a Server listening on the given port.
func New(svc Translator, port int) *Server {
	router := mux.NewRouter()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    fmt.Sprintf(":%d", port),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	s := &Server{Router: router, svc: svc, srv: srv}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Router.HandleFunc("/", s.handleHealth).Methods("GET")
	s.Router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.Router.HandleFunc("/translate", s.handlePreflight).Methods("OPTIONS")
	s.Router.HandleFunc("/translate", s.handleTranslate).Methods("POST")
	s.Router.HandleFunc("/stats", s.handleStats).Methods("GET")
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "translator-api",
	})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "3600")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "request body must be JSON with a 'name' key",
		})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "request body must be JSON with a 'name' key",
		})
		return
	}

	res, err := s.svc.Translate(r.Context(), req.Name, req.Context)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal translation error",
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to compute statistics",
		})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
