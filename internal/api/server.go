// Package api exposes the spectral kernel as a JSON-over-HTTP service.
//
// The kernel packages stay transport-agnostic; everything request-shaped —
// decoding, validation, payload caps, CORS — lives here.
package api

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// maxSignalSeconds caps accepted payloads to bound request size; it is a
// transport policy, not a kernel limit.
const maxSignalSeconds = 30.0

// Server routes kernel operations over HTTP.
type Server struct {
	log            *zap.Logger
	allowedOrigins []string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS allow-list. Defaults to the local
// development frontend.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// NewServer creates a configured API server.
func NewServer(log *zap.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		log:            log,
		allowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Handler returns the full request handler including CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ping", s.handlePing)
	mux.HandleFunc("GET /api/bands", s.handleBands)
	mux.HandleFunc("POST /api/equalize", s.handleEqualize)
	mux.HandleFunc("POST /api/spectrum", s.handleSpectrum)
	mux.HandleFunc("POST /api/spectrogram", s.handleSpectrogram)
	mux.HandleFunc("POST /api/response", s.handleResponseCurve)
	mux.HandleFunc("POST /api/synthesize", s.handleSynthesize)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(mux)
}
