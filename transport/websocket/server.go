package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/glbessa/TicTacToeBackend/internal/entity"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	shutdownTimeout = 5 * time.Second

	maxMessageSize = 1024
)

type gamePlayUseCase interface {
	Join(ctx context.Context, connID, nickname string) ([]entity.Event, error)
	MakeTurn(ctx context.Context, connID string, cell int) ([]entity.Event, error)
	Disconnect(ctx context.Context, connID string) []entity.Event
}

// Server is the protocol gateway: it upgrades connections, decodes inbound
// events, routes them through the gameplay use case and serializes the
// resulting events back to one or both participants.
type Server struct {
	logger    *slog.Logger
	uGamePlay gamePlayUseCase
	upgrader  websocket.Upgrader

	connsMu sync.RWMutex
	conns   map[string]*connection
}

func New(logger *slog.Logger, uGamePlay gamePlayUseCase) *Server {
	return &Server{
		logger:    logger.With("component", "websocket"),
		uGamePlay: uGamePlay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[string]*connection),
	}
}

// Handler - builds the HTTP handler serving the gateway endpoints.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})
	mux.HandleFunc("/ping", handlePing)

	return cors.Default().Handler(mux)
}

// Start - runs the gateway until ctx is canceled.
func (that *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// connection wraps one client socket. Both participants' goroutines deliver
// events to it, so writes serialize on the connection lock.
type connection struct {
	id string
	ws *websocket.Conn

	mu sync.Mutex
}

func (that *connection) send(v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.ws.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) ping() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
		return fmt.Errorf("failed to write ping: %w", err)
	}

	return nil
}

// serveConnection - runs one connection's task from upgrade to teardown.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{id: uuid.NewString(), ws: ws}
	log = log.With("connID", conn.id)

	that.addConn(conn)
	defer that.dropConn(ctx, conn)

	stopPing := that.keepAlive(conn)
	defer stopPing()

	log.Info("connection established", "remote", ws.RemoteAddr().String())

	that.readLoop(ctx, conn)

	log.Info("connection closed")
}

func (that *Server) readLoop(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "readLoop", "connID", conn.id)

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			// a close, an idle timeout or an undecodable frame is terminal
			// for this connection's task
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("connection read failed", "error", err)
			}

			return
		}

		that.dispatch(ctx, conn, &message)
	}
}

// keepAlive - pings the peer so a permanently silent connection trips the
// read deadline and takes the disconnect path.
func (that *Server) keepAlive(conn *connection) func() {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := conn.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}

func (that *Server) addConn(conn *connection) {
	that.connsMu.Lock()
	defer that.connsMu.Unlock()

	that.conns[conn.id] = conn
}

func (that *Server) dropConn(ctx context.Context, conn *connection) {
	that.connsMu.Lock()
	delete(that.conns, conn.id)
	that.connsMu.Unlock()

	that.deliver(that.uGamePlay.Disconnect(ctx, conn.id))

	_ = conn.ws.Close()
}

func (that *Server) connByID(id string) *connection {
	that.connsMu.RLock()
	defer that.connsMu.RUnlock()

	return that.conns[id]
}
