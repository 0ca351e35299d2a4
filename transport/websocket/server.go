package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/pkg"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, c *client, payload *RequestPayload) (ResponsePayload, error)

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the page is served from another local port
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleGameRestart

	return server
}

// Handler serves the websocket endpoint on /ws. Connections live until ctx is done
// or the peer goes away.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it gracefully once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied to the client
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	var sessionID string
	if cookie, cookieErr := r.Cookie(pkg.SessionCookieName); cookieErr == nil {
		sessionID = cookie.Value
	}

	c := newClient(log, conn, sessionID)

	// hijacked connections aren't tracked by http.Server.Shutdown
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	go c.writePump()
	c.readPump(ctx, that.dispatch)

	log.Debug("WebSocket connection closed")
}

// dispatch runs the handler for msg and queues its reply under the same action.
// Failures are reported to the client and never close the connection.
func (that *Server) dispatch(ctx context.Context, c *client, msg *Message) {
	log := that.logger.With("method", "dispatch", "action", msg.Action)

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Warn("unknown action")
		if err := c.sendError(msg.Action, "unknown action"); err != nil {
			log.Error("failed to send error response", "error", err)
		}
		return
	}

	payload, err := decodePayload(msg)
	if err != nil {
		log.Warn("bad payload", "error", err)
		if err = c.sendError(msg.Action, err.Error()); err != nil {
			log.Error("failed to send error response", "error", err)
		}
		return
	}

	resp, err := handler(ctx, c, payload)
	if err != nil {
		resp = ResponsePayload{Error: that.errorMessage(log, err)}
	}

	if err = c.sendMessage(msg.Action, resp); err != nil {
		log.Error("failed to send response", "error", err)
	}
}
