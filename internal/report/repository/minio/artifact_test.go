package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/internal/report/repository"
	"reporting-srv/pkg/log"
	pkgMinio "reporting-srv/pkg/minio"
)

type fakeObject struct {
	data []byte
	info pkgMinio.FileInfo
}

type fakeStorage struct {
	objects map[string]fakeObject
	failGet error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]fakeObject{}}
}

func (f *fakeStorage) UploadFile(_ context.Context, req *pkgMinio.UploadRequest) (*pkgMinio.FileInfo, error) {
	b, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	info := pkgMinio.FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		OriginalName: req.OriginalName,
		Size:         int64(len(b)),
		ContentType:  req.ContentType,
	}
	f.objects[req.BucketName+"/"+req.ObjectName] = fakeObject{data: b, info: info}
	return &info, nil
}

func (f *fakeStorage) DownloadFile(_ context.Context, req *pkgMinio.DownloadRequest) (io.ReadCloser, *pkgMinio.FileInfo, error) {
	if f.failGet != nil {
		return nil, nil, f.failGet
	}
	o, ok := f.objects[req.BucketName+"/"+req.ObjectName]
	if !ok {
		return nil, nil, pkgMinio.NewObjectNotFoundError(req.ObjectName)
	}
	info := o.info
	return io.NopCloser(bytes.NewReader(o.data)), &info, nil
}

func (f *fakeStorage) GetFileInfo(_ context.Context, bucketName, objectName string) (*pkgMinio.FileInfo, error) {
	o, ok := f.objects[bucketName+"/"+objectName]
	if !ok {
		return nil, pkgMinio.NewObjectNotFoundError(objectName)
	}
	info := o.info
	return &info, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, bucketName, objectName string) error {
	delete(f.objects, bucketName+"/"+objectName)
	return nil
}

func (f *fakeStorage) FileExists(_ context.Context, bucketName, objectName string) (bool, error) {
	_, ok := f.objects[bucketName+"/"+objectName]
	return ok, nil
}

func TestArtifact_PutGetDelete(t *testing.T) {
	store := newFakeStorage()
	repo := New(store, "report-artifacts", log.NewNop())
	ctx := context.Background()

	err := repo.Put(ctx, repository.PutArtifactOptions{
		Key:         "reports/abc/weights.csv",
		Filename:    "weights.csv",
		ContentType: "text/csv",
		Data:        []byte("a,b\n1,2\n"),
	})
	require.NoError(t, err)
	assert.Contains(t, store.objects, "report-artifacts/reports/abc/weights.csv")

	got, err := repo.Get(ctx, "reports/abc/weights.csv")
	require.NoError(t, err)
	assert.Equal(t, "weights.csv", got.Filename)
	assert.Equal(t, "text/csv", got.ContentType)
	assert.Equal(t, "a,b\n1,2\n", string(got.Data))

	require.NoError(t, repo.Delete(ctx, "reports/abc/weights.csv"))
	_, err = repo.Get(ctx, "reports/abc/weights.csv")
	assert.ErrorIs(t, err, repository.ErrArtifactNotFound)

	assert.NoError(t, repo.Delete(ctx, "reports/abc/weights.csv"))
}

func TestArtifact_GetPropagatesConnectionErrors(t *testing.T) {
	store := newFakeStorage()
	store.failGet = pkgMinio.NewConnectionError(errors.New("dial tcp: refused"))
	repo := New(store, "report-artifacts", log.NewNop())

	_, err := repo.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrArtifactNotFound)
}
