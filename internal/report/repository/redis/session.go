package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
	pkgRedis "reporting-srv/pkg/redis"
)

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Stash stores the inline session as JSON. A ttl of zero keeps it until overwritten.
func (r *implRepository) Stash(ctx context.Context, sessionID string, s model.InlineSession, ttl time.Duration) error {
	b, err := json.Marshal(s)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.redis.Stash: Failed to marshal session: %v", err)
		return err
	}
	if err := r.redis.Set(ctx, sessionKey(sessionID), b, ttl); err != nil {
		r.l.Errorf(ctx, "report.repository.redis.Stash: Failed to set session: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) Load(ctx context.Context, sessionID string) (model.InlineSession, error) {
	v, err := r.redis.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, pkgRedis.ErrKeyNotFound) {
		return model.InlineSession{}, repository.ErrSessionNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "report.repository.redis.Load: Failed to get session: %v", err)
		return model.InlineSession{}, err
	}

	var s model.InlineSession
	if err := json.Unmarshal([]byte(v), &s); err != nil {
		r.l.Warnf(ctx, "report.repository.redis.Load: Corrupt session %s: %v", sessionID, err)
		return model.InlineSession{}, fmt.Errorf("%w: %v", repository.ErrCorruptRecord, err)
	}
	return s, nil
}
