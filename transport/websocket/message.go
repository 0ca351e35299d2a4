package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

const (
	actionConnect     = "connect"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	SessionID string            `json:"session_id,omitempty"`
	Game      *entity.GameState `json:"game,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func newGamePayload(session *entity.Session) ResponsePayload {
	state := session.Game.State()

	return ResponsePayload{
		SessionID: session.ID,
		Game:      &state,
	}
}
