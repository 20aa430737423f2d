// Package health exposes liveness and readiness endpoints for the long-running
// server. Readiness aggregates the database and, when present, the classifier.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPort  = "8080"
	checkTimeout = 3 * time.Second
)

// Pinger is the contract a dependency satisfies to take part in readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabasePinger reports database connectivity.
type DatabasePinger = Pinger

// ClassifierPinger reports win-probability classifier availability.
// Classifier outage degrades readiness but the check is optional; commands
// that never predict pass a nil pinger.
type ClassifierPinger = Pinger

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Classifier  ClassifierPinger
}

type dependency struct {
	name   string
	pinger Pinger
}

// Server serves /health, /live and /ready for container probes.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        string
	server      *http.Server
	logger      *logrus.Logger
	deps        []dependency

	mu    sync.RWMutex
	ready bool
}

type statusResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

type readyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// NewServer creates a health server. Port resolution order is config, the
// HEALTH_PORT environment variable, then 8080.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = defaultPort
	}

	s := &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		logger:      cfg.Logger,
	}
	if cfg.DB != nil {
		s.deps = append(s.deps, dependency{name: "database", pinger: cfg.DB})
	}
	if cfg.Classifier != nil {
		s.deps = append(s.deps, dependency{name: "classifier", pinger: cfg.Classifier})
	}
	return s
}

// SetReady flips the manual readiness gate. The server command sets it true
// once the scheduler is running and false again during shutdown.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports the manual readiness gate.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves the probe endpoints in the background until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Health check server starting")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health check server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown stops the probe server, draining in-flight requests briefly.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("Health check server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Service: s.serviceName,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string, len(s.deps)+1)
	healthy := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		checks["service"] = "not_ready"
		healthy = false
	}

	for _, dep := range s.deps {
		if err := s.pingDependency(r.Context(), dep); err != nil {
			checks[dep.name] = fmt.Sprintf("error: %v", err)
			healthy = false
		} else {
			checks[dep.name] = "ok"
		}
	}

	resp := readyResponse{
		Service:  s.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	resp.Status = "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "not_ready"
	}
	writeJSON(w, status, resp)
}

func (s *Server) pingDependency(ctx context.Context, dep dependency) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return dep.pinger.Ping(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
