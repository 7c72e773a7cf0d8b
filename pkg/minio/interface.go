package minio

import (
	"context"
	"io"
	"net/http"

	"reporting-srv/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO is the composite interface embedding all sub-interfaces.
type MinIO interface {
	Connection
	BucketManager
	FileUploader
	FileDownloader
	FileManager
}

// Connection defines interface for MinIO connection operations.
type Connection interface {
	Connect(ctx context.Context) error
	ConnectWithRetry(ctx context.Context, maxRetries int) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// BucketManager defines operations for managing buckets.
type BucketManager interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// EnsureBucket creates bucketName when it does not exist yet.
	EnsureBucket(ctx context.Context, bucketName string) error
}

// FileUploader defines methods for uploading files.
type FileUploader interface {
	UploadFile(ctx context.Context, req *UploadRequest) (*FileInfo, error)
}

// FileDownloader defines methods for downloading files.
type FileDownloader interface {
	DownloadFile(ctx context.Context, req *DownloadRequest) (io.ReadCloser, *FileInfo, error)
}

// FileManager defines methods for file metadata, deletion and existence checks.
type FileManager interface {
	GetFileInfo(ctx context.Context, bucketName, objectName string) (*FileInfo, error)
	DeleteFile(ctx context.Context, bucketName, objectName string) error
	FileExists(ctx context.Context, bucketName, objectName string) (bool, error)
}

// NewMinIO creates a new MinIO client. Returns the MinIO interface.
func NewMinIO(cfg *config.MinIOConfig) (MinIO, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		DisableCompression:  disableCompression,
		DisableKeepAlives:   disableKeepAlives,
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}

	return &implMinIO{
		minioClient: client,
		config:      cfg,
	}, nil
}

// NewMinIOWithRetry creates a new MinIO client and connects with retry.
func NewMinIOWithRetry(cfg *config.MinIOConfig, maxRetries int) (MinIO, error) {
	client, err := NewMinIO(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.ConnectWithRetry(context.Background(), maxRetries); err != nil {
		return nil, err
	}
	return client, nil
}
