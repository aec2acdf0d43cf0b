package posestream

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// client is one connected page host. Each client owns a scroll controller so offsets from
// different pages never mix; the reader stores the latest offset and the writer turns it into a pose.
type client struct {
	conn   *websocket.Conn
	ctrl   camera.ScrollController
	notify chan struct{}
	errs   chan string
	done   chan struct{}
	once   sync.Once
	id     string
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Server streams camera poses to page hosts over WebSocket. A host sends its scroll offset and
// receives the pose for the most recent offset; offsets that arrive faster than poses are written
// are coalesced.
type Server struct {
	cfg camera.ScrollConfig

	maxClients      int
	pingInterval    time.Duration
	maxPayloadBytes int64
	allowedOrigins  []string

	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[*client]struct{}
	reserved int
}

// NewServer creates a pose server evaluating cfg.
//
// Parameters:
//   - cfg: the scroll config poses are computed from
//   - options: functional options for limits and keepalive
//
// Returns:
//   - *Server: the server; mount Handler on an http.Server
func NewServer(cfg camera.ScrollConfig, options ...ServerBuilderOption) *Server {
	s := &Server{
		cfg:             cfg,
		maxClients:      DefaultMaxClients,
		pingInterval:    DefaultPingInterval,
		maxPayloadBytes: DefaultMaxPayloadBytes,
		clients:         make(map[*client]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	return s
}

// Handler returns the HTTP routes: /ws for the pose stream and /healthz for liveness.
//
// Returns:
//   - http.Handler: the route multiplexer
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", s.serveHealth)
	return mux
}

// ClientCount returns the number of connected clients, handshakes in progress included.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients) + s.reserved
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.allowedOrigins, origin)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.ClientCount(),
	})
}

// ServeWS upgrades the request and runs the client's reader and writer goroutines.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}
	if !s.reserve() {
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.mu.Lock()
		s.reserved--
		s.mu.Unlock()
		log.Printf("[PoseStream] upgrade: %v", err)
		return
	}
	conn.SetReadLimit(s.maxPayloadBytes)

	c := &client{
		conn:   conn,
		ctrl:   camera.NewScrollController(s.cfg),
		notify: make(chan struct{}, 1),
		errs:   make(chan string, 4),
		done:   make(chan struct{}),
		id:     r.RemoteAddr,
	}
	s.mu.Lock()
	s.reserved--
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	log.Printf("[PoseStream] client %s connected", c.id)

	go s.readLoop(c)
	go s.writeLoop(c)
}

// reserve claims a client slot ahead of the upgrade so the limit holds under concurrent dials.
func (s *Server) reserve() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxClients > 0 && len(s.clients)+s.reserved >= s.maxClients {
		return false
	}
	s.reserved++
	return true
}

func (s *Server) release(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

func (s *Server) readLoop(c *client) {
	defer func() {
		s.release(c)
		c.close()
		log.Printf("[PoseStream] client %s disconnected", c.id)
	}()

	readWait := 2 * s.pingInterval
	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[PoseStream] read error from %s: %v", c.id, err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(readWait))

		offset, err := DecodeOffset(msg)
		if err != nil {
			select {
			case c.errs <- err.Error():
			default:
			}
			continue
		}

		c.ctrl.SetScroll(offset)
		select {
		case c.notify <- struct{}{}:
		default:
		}
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(s.pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case <-c.notify:
			c.ctrl.Update()
			msg := NewPoseMessage(c.ctrl.Pose())
			if err := s.writeJSON(c, msg); err != nil {
				return
			}
		case text := <-c.errs:
			if err := s.writeJSON(c, ErrorMessage{Error: text}); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeJSON(c *client, v any) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}
