package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/pkg"
)

//go:generate mockery --name=sessionRepoDep --output=../../mocks/usecase --outpkg=usecase --with-expecter
type sessionRepoDep interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type GameUseCase interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
	EndSession(ctx context.Context, sessionID string) error
}

// GameManager is the only controller of the engines it stores. Calls on the
// same session are serialised, so moves land in the order they were made.
// Different sessions never wait for each other.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepoDep

	locks *sessionLocks
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepoDep) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		locks:       newSessionLocks(),
	}
}

var _ GameUseCase = (*GameManager)(nil)

// GetOrCreateSession returns the session for sessionID, or a fresh one when the
// id is empty, unknown, expired or holds a game that can't be trusted.
func (that *GameManager) GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	return that.resolveSession(ctx, sessionID)
}

// MakeTurn applies a click on cell. Clicks on a filled cell or a finished game
// leave the session as it was and are not an error. A session that can't be
// resumed is replaced by a fresh game before the click is applied.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	session, err := that.resolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	log := that.logger.With("method", "MakeTurn", "sessionID", session.ID, "cell", cell)

	applied, err := session.Game.ApplyMove(cell)
	if err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	result := session.Game.Result()
	log = log.With("applied", applied, "outcome", result.Outcome.String())

	if !applied {
		log.Debug("move ignored")
		return session, nil
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	if result.IsTerminal() {
		log.Info("game finished", "winner", result.Winner.String())
	} else {
		log.Debug("move applied")
	}

	return session, nil
}

// Restart resets the session's game whatever state it is in.
func (that *GameManager) Restart(ctx context.Context, sessionID string) (*entity.Session, error) {
	unlock := that.locks.lock(sessionID)
	defer unlock()

	session, err := that.resolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Game.Reset()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.logger.Info("game restarted", "method", "Restart", "sessionID", session.ID)

	return session, nil
}

func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperror.ErrSessionRequired
	}

	unlock := that.locks.lock(sessionID)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "method", "EndSession", "sessionID", sessionID)

	return nil
}

// resolveSession must be called with sessionID locked.
func (that *GameManager) resolveSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	log := that.logger.With("method", "resolveSession")

	if sessionID == "" || !pkg.IsValidSessionID(sessionID) {
		return that.createSession(ctx)
	}

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, apperror.ErrSessionNotFound):
		log.Debug("session not found, starting a new one", "sessionID", sessionID)
		return that.createSession(ctx)
	case errors.Is(err, entity.ErrCorruptedState):
		log.Warn("stored session rejected, starting a new one", "sessionID", sessionID, "error", err)
		return that.createSession(ctx)
	default:
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
}

func (that *GameManager) createSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(pkg.GenerateNewSessionID())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
