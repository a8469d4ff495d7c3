package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/chapterkit/chapterize/internal/logger"
)

// Server is a local static file server over a page directory, so saved
// pages can be reprocessed without network access.
type Server struct {
	srv  *http.Server
	addr string
}

// NewServer creates a server for dir listening on localhost:port.
// port 0 picks a free port when Start is called.
func NewServer(dir string, port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	return &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: fmt.Sprintf("localhost:%d", port),
	}
}

// Start begins serving in a background goroutine. It returns the base
// URL (e.g. "http://localhost:8765") once the listener is bound.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("binding %s: %w", s.addr, err)
	}
	s.addr = ln.Addr().String()

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("page server stopped", "error", err)
		}
	}()

	baseURL := "http://" + s.addr
	logger.Info("serving pages", "url", baseURL)
	return baseURL, nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
