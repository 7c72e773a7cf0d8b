package minio

import (
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporting-srv/config"
)

func TestValidateConfig(t *testing.T) {
	cfg := &config.MinIOConfig{Endpoint: "localhost", AccessKey: "a", SecretKey: "s", Bucket: "reports"}
	require.NoError(t, validateConfig(cfg))
	assert.Equal(t, "localhost:9000", cfg.Endpoint)

	err := validateConfig(&config.MinIOConfig{Endpoint: "localhost:9000"})
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeInvalidInput, se.Code)
}

func TestValidateUploadRequest(t *testing.T) {
	ok := &UploadRequest{BucketName: "reports", ObjectName: "a/b.csv", Reader: strings.NewReader("x"), Size: 1, ContentType: "text/csv"}
	require.NoError(t, validateUploadRequest(ok))

	tcs := map[string]func(r *UploadRequest){
		"no bucket":      func(r *UploadRequest) { r.BucketName = "" },
		"leading slash":  func(r *UploadRequest) { r.ObjectName = "/a.csv" },
		"trailing slash": func(r *UploadRequest) { r.ObjectName = "a/" },
		"no reader":      func(r *UploadRequest) { r.Reader = nil },
		"no type":        func(r *UploadRequest) { r.ContentType = "" },
	}
	for name, mutate := range tcs {
		t.Run(name, func(t *testing.T) {
			r := *ok
			mutate(&r)
			assert.Error(t, validateUploadRequest(&r))
		})
	}
}

func TestValidateBucketName(t *testing.T) {
	assert.NoError(t, validateBucketName("report-artifacts"))
	assert.Error(t, validateBucketName("ab"))
	assert.Error(t, validateBucketName("Reports"))
	assert.Error(t, validateBucketName("a--b"))
	assert.Error(t, validateBucketName("-ab"))
}

func TestHandleMinIOError(t *testing.T) {
	err := handleMinIOError(minio.ErrorResponse{Code: "NoSuchKey"}, "get_file_info", "k")
	assert.True(t, IsNotFound(err))

	err = handleMinIOError(minio.ErrorResponse{Code: "NoSuchBucket"}, "get_file_info", "b")
	assert.True(t, IsNotFound(err))

	err = handleMinIOError(minio.ErrorResponse{Code: "AccessDenied"}, "upload_file", "k")
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodePermission, se.Code)
	assert.False(t, IsNotFound(err))

	cause := errors.New("dial tcp: refused")
	err = handleMinIOError(cause, "connect", "")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeConnection, se.Code)
	assert.ErrorIs(t, err, cause)
}
