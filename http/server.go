// Package http serves the bookvox pipeline over HTTP for the capture UI.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/bookvox"
	"github.com/google/uuid"
)

// Default limits.
const (
	DefaultMaxBodyBytes = 20 << 20
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 2 * time.Minute
	ShutdownTimeout     = 5 * time.Second
)

// Server exposes the pipeline endpoints:
//
//	POST /api/clean-text     {text, isDoublePage?, tier?} -> CleanedTranscript
//	POST /api/vision-extract {image, isDoublePage?}       -> {extractedText}
//	POST /api/tts            {text}                       -> audio/mpeg
//	GET  /healthz
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// Addr is the bind address, e.g. ":8080". Set before Open.
	Addr string

	Cleaner     bookvox.Cleaner
	Extractor   bookvox.Extractor
	Synthesizer bookvox.Synthesizer

	// DefaultTier applies to clean-text requests without a tier.
	DefaultTier bookvox.Tier

	MaxBodyBytes int64
	Logger       *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// WithMaxBodyBytes limits request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// NewServer returns a Server with its routes registered.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		DefaultTier:  bookvox.DefaultTier,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("POST /api/clean-text", s.handleCleanText)
	s.mux.HandleFunc("POST /api/vision-extract", s.handleVisionExtract)
	s.mux.HandleFunc("POST /api/tts", s.handleTTS)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.server = &http.Server{
		Handler:      s,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
	return s
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of a running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP tags each request with an ID and logs its outcome.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.Logger.Log(r.Context(), level, "request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(begin),
		)
	}(time.Now())

	if r.Body != nil && s.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(rec, r.Body, s.MaxBodyBytes)
	}
	s.mux.ServeHTTP(rec, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
