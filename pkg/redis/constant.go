package redis

import (
	"errors"
	"time"
)

const DefaultConnectTimeout = 5 * time.Second

var (
	ErrHostRequired = errors.New("redis: host is required")
	ErrInvalidPort  = errors.New("redis: invalid port")
	ErrKeyNotFound  = errors.New("redis: key not found")
)
