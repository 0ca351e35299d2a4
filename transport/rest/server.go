package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
	EndSession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	sessionTTL  time.Duration

	router *chi.Mux
}

func New(logger *slog.Logger, gameUseCase gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
		sessionTTL:  sessionTTL,
		router:      chi.NewRouter(),
	}

	server.router.Use(chimw.RequestID)
	server.router.Use(chimw.RealIP)
	server.router.Use(chimw.Recoverer)
	server.router.Use(chimw.Timeout(10 * time.Second))
	server.router.Use(server.logRequests)

	server.router.Get("/ping", NewPingHandler().PingHandler)

	server.router.Route("/api/game", func(r chi.Router) {
		r.Use(jsonContentType)

		r.Get("/", server.handleGetGame)
		r.Delete("/", server.handleEndSession)
		r.Post("/turn", server.handleTurn)
		r.Post("/restart", server.handleRestart)
	})

	return server
}

func (that *Server) Router() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it gracefully once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started),
			"requestID", chimw.GetReqID(r.Context()),
		)
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
