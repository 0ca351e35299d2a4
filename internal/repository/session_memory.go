package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

type memorySession struct {
	cache *expirable.LRU[string, entity.Session]
}

// NewMemorySessionRepository keeps at most size sessions in process memory.
// The least recently used session is evicted first; ttl of zero disables expiry.
func NewMemorySessionRepository(size int, ttl time.Duration) SessionRepository {
	return &memorySession{
		cache: expirable.NewLRU[string, entity.Session](size, nil, ttl),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	if err := checkSession(session); err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}

	// copy the game so later mutations by the caller don't leak into the store
	game := *session.Game
	that.cache.Add(sessionKey(session.ID), entity.Session{ID: session.ID, Game: &game})

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	stored, ok := that.cache.Get(sessionKey(id))
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	game := *stored.Game

	return &entity.Session{ID: stored.ID, Game: &game}, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	if !that.cache.Remove(sessionKey(id)) {
		return apperror.ErrSessionNotFound
	}

	return nil
}
