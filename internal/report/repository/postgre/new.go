package postgre

import (
	"database/sql"

	"reporting-srv/internal/report/repository"
	"reporting-srv/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

func New(db *sql.DB, l log.Logger) repository.RequestReportRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
