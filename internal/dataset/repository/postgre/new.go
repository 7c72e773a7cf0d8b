package postgre

import (
	"database/sql"

	"reporting-srv/internal/dataset/repository"
	"reporting-srv/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

func New(db *sql.DB, l log.Logger) repository.ObsRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
