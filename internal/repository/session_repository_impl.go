package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"hospitron/internal/domain/entity"
	domainRepo "hospitron/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "hospitron_user"

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, sessionID)
}

type redisSessionRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSessionRepository stores sessions as JSON that expire with the session.
func NewRedisSessionRepository(client *redis.Client) domainRepo.SessionRepository {
	return &redisSessionRepository{client: client, now: time.Now}
}

func (r *redisSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	ttl := session.TTL(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err()
}

func (r *redisSessionRepository) Load(ctx context.Context, sessionID string) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainRepo.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	if session.IsExpired(r.now()) {
		return nil, domainRepo.ErrSessionNotFound
	}
	return &session, nil
}

func (r *redisSessionRepository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process. They do not survive a restart.
func NewMemorySessionRepository() domainRepo.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]entity.Session),
		now:      time.Now,
	}
}

// Save also drops every expired session, so sessions that are never loaded
// again do not pile up.
func (r *memorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	now := r.now()
	if session.IsExpired(now) {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.sessions {
		if existing.IsExpired(now) {
			delete(r.sessions, id)
		}
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepository) Load(ctx context.Context, sessionID string) (*entity.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, domainRepo.ErrSessionNotFound
	}
	if session.IsExpired(r.now()) {
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return nil, domainRepo.ErrSessionNotFound
	}
	return &session, nil
}

func (r *memorySessionRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}
