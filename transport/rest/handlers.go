package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/pkg"
)

const maxBodySize = 1 << 10

type turnRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	SessionID string           `json:"session_id"`
	Game      entity.GameState `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.GetOrCreateSession(r.Context(), sessionIDFromCookie(r))
	if err != nil {
		that.writeError(w, "handleGetGame", err)
		return
	}

	that.writeSession(w, session)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "handleTurn", fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err))
		return
	}

	if req.Cell == nil {
		that.writeError(w, "handleTurn", fmt.Errorf("%w: cell is required", apperror.ErrInvalidPayload))
		return
	}

	session, err := that.gameUseCase.MakeTurn(r.Context(), sessionIDFromCookie(r), *req.Cell)
	if err != nil {
		that.writeError(w, "handleTurn", err)
		return
	}

	that.writeSession(w, session)
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.Restart(r.Context(), sessionIDFromCookie(r))
	if err != nil {
		that.writeError(w, "handleRestart", err)
		return
	}

	that.writeSession(w, session)
}

// handleEndSession forgets the session. Ending a session that is already gone
// is not an error for the client.
func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	err := that.gameUseCase.EndSession(r.Context(), sessionIDFromCookie(r))
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) && !errors.Is(err, apperror.ErrSessionRequired) {
		that.writeError(w, "handleEndSession", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     pkg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) writeSession(w http.ResponseWriter, session *entity.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     pkg.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  time.Now().Add(that.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	that.writeJSON(w, http.StatusOK, gameResponse{
		SessionID: session.ID,
		Game:      session.Game.State(),
	})
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	switch {
	case errors.Is(err, entity.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidPayload):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		that.logger.Error("request failed", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func sessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(pkg.SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
