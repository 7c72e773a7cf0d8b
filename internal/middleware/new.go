package middleware

import (
	"reporting-srv/config"
	"reporting-srv/pkg/log"
)

type Middleware struct {
	l            log.Logger
	cookieConfig config.CookieConfig
}

func New(l log.Logger, cookieConfig config.CookieConfig) Middleware {
	return Middleware{
		l:            l,
		cookieConfig: cookieConfig,
	}
}
