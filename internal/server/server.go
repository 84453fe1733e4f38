// Package server exposes the broker over HTTP
package server

import (
	"github.com/chucky-1/fdbroker/internal/gateway"
	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/chucky-1/fdbroker/internal/request"
	"github.com/chucky-1/fdbroker/internal/service"
	"github.com/chucky-1/fdbroker/internal/session"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const indexFile = "index.html"

// Server routes HTTP requests to the service. The demo keeps one session per process.
type Server struct {
	srv       *service.Service
	sess      *session.Session
	router    *mux.Router
	staticDir string
	origins   []string
}

// NewServer is constructor
func NewServer(srv *service.Service, sess *session.Session, staticDir string, origins []string) *Server {
	s := &Server{
		srv:       srv,
		sess:      sess,
		router:    mux.NewRouter(),
		staticDir: staticDir,
		origins:   origins,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logRequests)

	s.router.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	s.router.HandleFunc("/linkAccount", s.handleLinkAccount).Methods(http.MethodPost)
	s.router.HandleFunc("/placeOrder", s.handlePlaceOrder).Methods(http.MethodPost)
	s.router.HandleFunc("/stocks", s.handleStocks).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.PathPrefix("/").HandlerFunc(s.handleStatic).Methods(http.MethodGet)
}

// Handler returns the router wrapped with CORS
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Infof("http server starting on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.srv.Reset(s.sess)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLinkAccount(w http.ResponseWriter, r *http.Request) {
	var req request.LinkAccount
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error(err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.srv.LinkAccount(r.Context(), s.sess, req.Username, req.Password)
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	log.Error(err)

	var rejected *gateway.RemoteAuthRejectedError
	if errors.As(err, &rejected) {
		http.Error(w, rejected.Message, http.StatusUnauthorized)
		return
	}
	http.Error(w, "account link failed", http.StatusInternalServerError)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error(err)
		respondJSON(w, http.StatusInternalServerError, request.OrderResponse{Status: string(model.StatusUnknownError)})
		return
	}

	status, err := s.srv.PlaceOrder(r.Context(), s.sess, &req)
	if err != nil {
		log.Error(err)
		respondJSON(w, http.StatusInternalServerError, request.OrderResponse{Status: string(model.StatusUnknownError)})
		return
	}
	respondJSON(w, http.StatusOK, request.OrderResponse{Status: string(status)})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.srv.Stocks(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatic serves files of the static dir and the entry page for everything else
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(s.staticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() && !strings.HasSuffix(r.URL.Path, "/") {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.staticDir, indexFile))
}

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
