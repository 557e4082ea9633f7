// Package telemetry serves a websocket feed of simulation state so
// external viewers can watch object poses without linking the engine.
package telemetry

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-physics/internal/logger"
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// ObjectState is one object's entry in a state frame.
type ObjectState struct {
	ID       string     `json:"id"`
	Position vmath.Vec3 `json:"position"`
	Velocity vmath.Vec3 `json:"velocity"`
	Active   bool       `json:"active"`
}

// StateFrame is the message broadcast to every connected client.
type StateFrame struct {
	ServerTime float64       `json:"server_time"`
	Objects    []ObjectState `json:"objects"`
}

// Server accepts websocket clients on /ws and pushes state frames to all
// of them. Clients are write-only; inbound messages are read and dropped
// to service control frames.
type Server struct {
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer builds a telemetry server listening on addr.
func NewServer(addr string) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start runs the HTTP listener until Shutdown. Blocking; run it on its
// own goroutine.
func (s *Server) Start() error {
	logger.Info("telemetry listening", zap.String("addr", s.httpSrv.Addr))
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the listener and closes every client connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	logger.Info("telemetry client connected",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.Int("clients", n))

	// Drain inbound traffic so pings and close frames are handled; the
	// read loop exiting means the client is gone.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	n := len(s.clients)
	s.mu.Unlock()
	logger.Info("telemetry client disconnected", zap.Int("clients", n))
}

// NumClients returns the number of connected clients.
func (s *Server) NumClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends a state frame to every connected client. Clients whose
// write fails are dropped.
func (s *Server) Broadcast(frame StateFrame) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(frame); err != nil {
			logger.Warn("telemetry write failed", zap.Error(err))
			s.drop(conn)
		}
	}
}
