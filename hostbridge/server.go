package hostbridge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Server accepts websocket control connections and feeds an Inbox.
type Server struct {
	inbox    *Inbox
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a control server. Any origin may connect.
func NewServer(inbox *Inbox, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		inbox:  inbox,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and reads commands until the peer closes.
// Unknown and malformed messages are logged and skipped.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("host bridge upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	s.logger.Info("host bridge connected", "remote", r.RemoteAddr)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("host bridge read ended", "error", err)
			}
			s.logger.Info("host bridge disconnected", "remote", r.RemoteAddr)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		cmd, err := Decode(data)
		if err != nil {
			s.logger.Warn("host bridge command skipped", "error", err)
			continue
		}
		s.inbox.Push(cmd)
	}
}

// ListenAndServe serves the control endpoint at path until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, s)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("host bridge listening", "addr", addr, "path", path)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
