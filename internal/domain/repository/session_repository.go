package repository

import (
	"context"
	"errors"

	"hospitron/internal/domain/entity"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Load returns ErrSessionNotFound for unknown or expired sessions.
	Load(ctx context.Context, sessionID string) (*entity.Session, error)
	Clear(ctx context.Context, sessionID string) error
}
