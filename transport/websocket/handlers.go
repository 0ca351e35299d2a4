package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

// handleConnect resumes the named session or starts a new one.
func (that *Server) handleConnect(ctx context.Context, c *client, payload *RequestPayload) (ResponsePayload, error) {
	session, err := that.gameUseCase.GetOrCreateSession(ctx, c.resolveSessionID(payload))
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to connect: %w", err)
	}

	c.sessionID = session.ID

	return newGamePayload(session), nil
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, payload *RequestPayload) (ResponsePayload, error) {
	if payload.Cell == nil {
		return ResponsePayload{}, fmt.Errorf("%w: cell is required", apperror.ErrInvalidPayload)
	}

	session, err := that.gameUseCase.MakeTurn(ctx, c.resolveSessionID(payload), *payload.Cell)
	if err != nil {
		return ResponsePayload{}, err
	}

	c.sessionID = session.ID

	return newGamePayload(session), nil
}

func (that *Server) handleGameRestart(ctx context.Context, c *client, payload *RequestPayload) (ResponsePayload, error) {
	session, err := that.gameUseCase.Restart(ctx, c.resolveSessionID(payload))
	if err != nil {
		return ResponsePayload{}, err
	}

	c.sessionID = session.ID

	return newGamePayload(session), nil
}

// errorMessage turns err into the text sent to the client. Caller mistakes are
// echoed back, anything else is logged and hidden.
func (that *Server) errorMessage(log *slog.Logger, err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidPayload),
		errors.Is(err, apperror.ErrSessionRequired),
		errors.Is(err, apperror.ErrSessionNotFound):
		return err.Error()
	default:
		log.Error("failed to handle message", "error", err)
		return "internal error"
	}
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var payload RequestPayload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return &payload, nil
}

func (that *client) resolveSessionID(payload *RequestPayload) string {
	if payload.SessionID != "" {
		return payload.SessionID
	}

	return that.sessionID
}
