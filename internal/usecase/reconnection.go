package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/repository"
)

type tokenStore interface {
	Save(ctx context.Context, token entity.SessionToken) error
	Load(ctx context.Context) (entity.SessionToken, error)
	Clear(ctx context.Context) error
}

// ReconnectionManager - remembers which seat this client holds in which room.
type ReconnectionManager struct {
	logger *slog.Logger
	store  tokenStore
}

func NewReconnectionManager(logger *slog.Logger, store tokenStore) *ReconnectionManager {
	return &ReconnectionManager{
		logger: logger.With("component", "reconnection"),
		store:  store,
	}
}

func (that *ReconnectionManager) Remember(ctx context.Context, roomID, playerID string) error {
	token, err := entity.NewSessionToken(roomID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remember session: %w", err)
	}

	if err = that.store.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to remember session: %w", err)
	}

	return nil
}

// Resume - the remembered token, only when it was issued for roomID.
func (that *ReconnectionManager) Resume(ctx context.Context, roomID string) (entity.SessionToken, bool) {
	log := that.logger.With("method", "Resume", "room_id", roomID)

	token, err := that.store.Load(ctx)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return entity.SessionToken{}, false
	}

	if err != nil {
		log.Warn("failed to load session token", "error", err)
		return entity.SessionToken{}, false
	}

	if !token.Matches(roomID) {
		log.Debug("ignoring session token of another room", "token_room_id", token.RoomID)
		return entity.SessionToken{}, false
	}

	return token, true
}

func (that *ReconnectionManager) Forget(ctx context.Context) error {
	if err := that.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to forget session: %w", err)
	}

	return nil
}
