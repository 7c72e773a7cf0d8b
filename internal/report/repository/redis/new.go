package redis

import (
	"reporting-srv/internal/report/repository"
	pkgRedis "reporting-srv/pkg/redis"
	"reporting-srv/pkg/log"
)

const keyPrefix = "report:session:"

type implRepository struct {
	redis pkgRedis.IRedis
	l     log.Logger
}

// New creates a Redis-backed session store.
func New(redis pkgRedis.IRedis, l log.Logger) repository.SessionRepository {
	return &implRepository{
		redis: redis,
		l:     l,
	}
}
