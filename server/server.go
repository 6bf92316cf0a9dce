package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/server/connection"
	"github.com/lazharichir/blackjack/server/events"
	"golang.org/x/sync/errgroup"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server exposes the casino over a REST API plus a WebSocket status feed
type Server struct {
	casino      *domain.Casino
	connMgr     *connection.Manager
	dispatcher  *events.Dispatcher
	broadcaster *StatusBroadcaster
	logger      *log.Logger
	httpServer  *http.Server
}

// ServerOption configures a Server
type ServerOption func(*serverConfig)

type serverConfig struct {
	clock          quartz.Clock
	statusInterval time.Duration
}

// WithClock overrides the status feed clock, used by tests
func WithClock(clock quartz.Clock) ServerOption {
	return func(cfg *serverConfig) {
		cfg.clock = clock
	}
}

// WithStatusInterval sets how often status snapshots are broadcast
func WithStatusInterval(interval time.Duration) ServerOption {
	return func(cfg *serverConfig) {
		cfg.statusInterval = interval
	}
}

// NewServer creates a new blackjack server around the casino
func NewServer(casino *domain.Casino, logger *log.Logger, opts ...ServerOption) *Server {
	cfg := serverConfig{
		clock:          quartz.NewReal(),
		statusInterval: time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	connMgr := connection.NewManager()
	dispatcher := events.NewDispatcher(connMgr, logger)

	// Feed clients see every domain event as it happens
	casino.AddEventHandler(dispatcher.HandleEvent)

	return &Server{
		casino:      casino,
		connMgr:     connMgr,
		dispatcher:  dispatcher,
		broadcaster: NewStatusBroadcaster(casino, connMgr, logger, cfg.clock, cfg.statusInterval),
		logger:      logger.WithPrefix("server"),
	}
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler builds the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws/status", s.handleWebSocket)

	mux.HandleFunc("POST /api/players", s.handleCreatePlayer)
	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("GET /api/players/{id}", s.handleGetPlayer)
	mux.HandleFunc("PUT /api/players/{id}", s.handleUpdatePlayer)
	mux.HandleFunc("DELETE /api/players/{id}", s.handleDeletePlayer)

	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/action", s.handleGameAction)
	mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)
	mux.HandleFunc("GET /api/games/{id}/events", s.handleGameEvents)

	return corsMiddleware(mux)
}

// Start runs the server until the context is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.connMgr.Start(ctx)
		return nil
	})

	group.Go(func() error {
		s.broadcaster.Run(ctx)
		return nil
	})

	group.Go(func() error {
		s.logger.Info("Starting server", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// handleWebSocket upgrades a status feed connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade to WebSocket", "error", err)
		return
	}

	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.logger.Info("Feed client connected", "client", client.ID, "remote", r.RemoteAddr)
	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

// readPump drains the WebSocket connection until the client goes away.
// The feed is one-way; incoming messages are discarded.
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("Feed client read error", "client", client.ID, "error", err)
			}
			return
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer client.Conn.Close()

	for {
		message, ok := <-client.Send
		if !ok {
			// Channel closed
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Error("Feed client write error", "client", client.ID, "error", err)
			return
		}
	}
}
