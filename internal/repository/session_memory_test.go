package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID_Success", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		// Given: a stored session with one move played
		session := entity.NewSession("123")
		_, err := session.Game.ApplyMove(0)
		require.NoError(t, err)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called
		retrievedSession, err := sessionRepo.GetByID(ctx, "123")

		// Then: the stored session is returned
		require.NoError(t, err)
		assert.Equal(t, session, retrievedSession)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		retrievedSession, err := sessionRepo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrievedSession)
	})

	t.Run("GetByID_Expired", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, 10*time.Millisecond)

		// Given: a session stored with a very short ttl
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: the ttl passes
		time.Sleep(50 * time.Millisecond)

		// Then: the session is gone
		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("GetByID_Evicted", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(1, time.Minute)

		// Given: a store with room for a single session
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("first")))
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("second")))

		// Then: the older session was evicted
		_, err := sessionRepo.GetByID(ctx, "first")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		_, err = sessionRepo.GetByID(ctx, "second")
		require.NoError(t, err)
	})
}

func TestMemorySessionRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		// Given: a stored session
		session := entity.NewSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the caller keeps mutating its own copy without saving
		_, err := session.Game.ApplyMove(4)
		require.NoError(t, err)

		// Then: the stored game is unchanged
		retrievedSession, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), retrievedSession.Game)
	})

	t.Run("Rejects Session Without ID", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		err := sessionRepo.CreateOrUpdate(ctx, entity.NewSession(""))

		require.ErrorIs(t, err, apperror.ErrSessionRequired)
	})

	t.Run("Rejects Session Without Game", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		err := sessionRepo.CreateOrUpdate(ctx, &entity.Session{ID: "123"})

		require.ErrorIs(t, err, ErrSessionWithoutGame)
	})

	t.Run("Rejects Corrupted Game", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		session := &entity.Session{
			ID:   "123",
			Game: &entity.Game{Board: entity.Board{entity.MarkX, entity.MarkX}, Next: entity.MarkO},
		}

		err := sessionRepo.CreateOrUpdate(ctx, session)

		require.ErrorIs(t, err, entity.ErrCorruptedState)
	})
}

func TestMemorySessionRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteByID_Success", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("123")))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "123"))

		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(10, time.Minute)

		err := sessionRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
