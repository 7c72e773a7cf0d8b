package minio

import (
	"reporting-srv/internal/report/repository"
	"reporting-srv/pkg/log"
	pkgMinio "reporting-srv/pkg/minio"
)

// Storage is the part of the object store the artifact repository needs.
type Storage interface {
	pkgMinio.FileUploader
	pkgMinio.FileDownloader
	pkgMinio.FileManager
}

type implRepository struct {
	store  Storage
	bucket string
	l      log.Logger
}

// New creates an artifact store that keeps rendered files as objects in bucket.
func New(store Storage, bucket string, l log.Logger) repository.ArtifactRepository {
	return &implRepository{
		store:  store,
		bucket: bucket,
		l:      l,
	}
}
