package minio

import (
	"bytes"
	"context"
	"io"

	"reporting-srv/internal/report/repository"
	pkgMinio "reporting-srv/pkg/minio"
)

func (r *implRepository) Put(ctx context.Context, opts repository.PutArtifactOptions) error {
	_, err := r.store.UploadFile(ctx, &pkgMinio.UploadRequest{
		BucketName:   r.bucket,
		ObjectName:   opts.Key,
		OriginalName: opts.Filename,
		Reader:       bytes.NewReader(opts.Data),
		Size:         int64(len(opts.Data)),
		ContentType:  opts.ContentType,
	})
	if err != nil {
		r.l.Errorf(ctx, "report.repository.minio.Put: Failed to upload %s: %v", opts.Key, err)
		return err
	}
	return nil
}

func (r *implRepository) Get(ctx context.Context, key string) (*repository.Artifact, error) {
	rc, info, err := r.store.DownloadFile(ctx, &pkgMinio.DownloadRequest{
		BucketName: r.bucket,
		ObjectName: key,
	})
	if err != nil {
		if pkgMinio.IsNotFound(err) {
			return nil, repository.ErrArtifactNotFound
		}
		r.l.Errorf(ctx, "report.repository.minio.Get: Failed to download %s: %v", key, err)
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.minio.Get: Failed to read %s: %v", key, err)
		return nil, err
	}

	return &repository.Artifact{
		Key:         key,
		Filename:    info.OriginalName,
		ContentType: info.ContentType,
		Data:        data,
	}, nil
}

func (r *implRepository) Delete(ctx context.Context, key string) error {
	if err := r.store.DeleteFile(ctx, r.bucket, key); err != nil {
		if pkgMinio.IsNotFound(err) {
			return nil
		}
		r.l.Errorf(ctx, "report.repository.minio.Delete: Failed to delete %s: %v", key, err)
		return err
	}
	return nil
}
