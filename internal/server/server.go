// Package server serves a directory tree over HTTP for local preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/net/netutil"

	"github.com/f4ah6o/madola-serve/internal/config"
)

// Server is a static file server rooted at a single directory.
type Server struct {
	root string
	cfg  config.Config
	http *http.Server
	ln   net.Listener
}

// New creates a Server for root. The root is passed explicitly and the
// process working directory is left untouched.
func New(root string, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("serving root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("serving root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("serving root %s is not a directory", abs)
	}

	return &Server{
		root: abs,
		cfg:  cfg,
		http: &http.Server{Handler: NewHandler(abs)},
	}, nil
}

// Root returns the absolute serving root.
func (s *Server) Root() string {
	return s.root
}

// Listen binds the configured address. It fails immediately if the port is
// taken; there is no retry and no fallback port.
func (s *Server) Listen() error {
	if s.ln != nil {
		return errors.New("server is already listening")
	}
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	s.ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until ctx is done, then stops accepting and
// gives in-flight requests the configured grace period. It returns nil after
// a shutdown triggered by ctx.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("server is not listening")
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.http.Serve(s.ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown did not complete: %v", err)
		s.http.Close()
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
