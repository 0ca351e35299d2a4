package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

var ErrSessionWithoutGame = errors.New("session has no game")

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

func sessionKey(id string) string {
	return "session:" + id
}

// checkSession rejects sessions whose game breaks the rules, so a bad write
// never reaches the engine.
func checkSession(session *entity.Session) error {
	if session.ID == "" {
		return apperror.ErrSessionRequired
	}

	if session.Game == nil {
		return fmt.Errorf("%w: %s", ErrSessionWithoutGame, session.ID)
	}

	if err := session.Game.Validate(); err != nil {
		return fmt.Errorf("session %s: %w", session.ID, err)
	}

	return nil
}
