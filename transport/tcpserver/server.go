package tcpserver

import (
	"bufio"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/game/service"
	"github.com/castlebay/boardwalk/game/session"
	"github.com/castlebay/boardwalk/protocol"
)

// Server accepts game clients over a length-prefixed JSON stream and feeds
// their commands to the router. Each connection gets its own read goroutine
// and a generated id that doubles as the player id for any game the
// connection joins.
type Server struct {
	registry *session.Manager
	router   *service.Router
	logger   *zap.SugaredLogger

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// NewServer creates a server over the given registry and router.
func NewServer(registry *session.Manager, router *service.Router, logger *zap.SugaredLogger) *Server {
	return &Server{
		registry: registry,
		router:   router,
		logger:   logger,
	}
}

// ListenAndServeTLS listens on addr with the given certificate pair and
// serves until the listener is closed.
func (s *Server) ListenAndServeTLS(addr, certFile, keyFile string) error {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return err
	}
	ln, err := tls.Listen("tcp", addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the accept loop on an already-bound listener. It returns when
// the listener is closed; Close-initiated shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.logger.Infow("accepting game clients", "addr", ln.Addr().String())
	for {
		nc, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			return err
		}
		go s.handleConn(nc)
	}
}

// Close stops the accept loop. Established connections keep running until
// their clients disconnect.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

// handleConn owns the read side of one client for its whole lifetime. A
// malformed frame body is logged and skipped; only transport errors end
// the session.
func (s *Server) handleConn(nc net.Conn) {
	c := &clientConn{
		id: uuid.New().String(),
		nc: nc,
	}
	s.registry.AddConn(c)
	s.logger.Infow("client connected", "conn", c.id, "remote", nc.RemoteAddr().String())

	defer func() {
		s.registry.RemoveConn(c.id)
		nc.Close()
		s.logger.Infow("client disconnected", "conn", c.id)
	}()

	reader := bufio.NewReader(nc)
	for {
		frame, err := protocol.ReadFrame(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			s.logger.Warnw("dropping client after read failure", "conn", c.id, "error", err)
			return
		}

		env, err := protocol.DecodeEnvelope(frame)
		if err != nil {
			s.logger.Debugw("ignoring malformed frame", "conn", c.id, "error", err)
			continue
		}
		s.router.HandleEnvelope(c.id, env)
	}
}
