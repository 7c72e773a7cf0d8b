package memory

import (
	"context"
	"time"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

func (s *implSessions) Stash(ctx context.Context, sessionID string, sess model.InlineSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.items[sessionID] = sessionEntry{session: sess, expiresAt: exp}
	return nil
}

func (s *implSessions) Load(ctx context.Context, sessionID string) (model.InlineSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[sessionID]
	if !ok {
		return model.InlineSession{}, repository.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.items, sessionID)
		return model.InlineSession{}, repository.ErrSessionNotFound
	}
	return e.session, nil
}
