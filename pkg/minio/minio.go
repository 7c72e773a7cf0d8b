package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// --- implMinIO: connection ---

func (m *implMinIO) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.minioClient.ListBuckets(ctx); err != nil {
		m.connected = false
		return handleMinIOError(err, "connect", "")
	}
	m.connected = true
	return nil
}

func (m *implMinIO) ConnectWithRetry(ctx context.Context, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := m.Connect(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		backoff := time.Duration(1<<uint(i)) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed to connect after %d retries: %w", maxRetries, lastErr)
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.connected {
		return NewConnectionError(fmt.Errorf("not connected"))
	}
	if _, err := m.minioClient.ListBuckets(ctx); err != nil {
		return handleMinIOError(err, "health_check", "")
	}
	return nil
}

func (m *implMinIO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// --- implMinIO: bucket ---

func (m *implMinIO) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if err := validateBucketName(bucketName); err != nil {
		return false, err
	}
	exists, err := m.minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return false, handleMinIOError(err, "check_bucket_exists", bucketName)
	}
	return exists, nil
}

func (m *implMinIO) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := m.minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.config.Region}); err != nil {
		return handleMinIOError(err, "create_bucket", bucketName)
	}
	return nil
}

// --- implMinIO: upload / download ---

func (m *implMinIO) UploadFile(ctx context.Context, req *UploadRequest) (*FileInfo, error) {
	if err := validateUploadRequest(req); err != nil {
		return nil, err
	}
	opts := minio.PutObjectOptions{ContentType: req.ContentType, UserMetadata: map[string]string{}}
	for k, v := range req.Metadata {
		opts.UserMetadata[k] = v
	}
	if req.OriginalName != "" {
		opts.UserMetadata[MetaOriginalName] = req.OriginalName
	}
	info, err := m.minioClient.PutObject(ctx, req.BucketName, req.ObjectName, req.Reader, req.Size, opts)
	if err != nil {
		return nil, handleMinIOError(err, "upload_file", req.ObjectName)
	}
	return &FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		OriginalName: req.OriginalName,
		Size:         info.Size,
		ContentType:  req.ContentType,
		ETag:         info.ETag,
		LastModified: time.Now(),
		Metadata:     opts.UserMetadata,
	}, nil
}

func (m *implMinIO) DownloadFile(ctx context.Context, req *DownloadRequest) (io.ReadCloser, *FileInfo, error) {
	if err := validateDownloadRequest(req); err != nil {
		return nil, nil, err
	}
	info, err := m.GetFileInfo(ctx, req.BucketName, req.ObjectName)
	if err != nil {
		return nil, nil, err
	}
	object, err := m.minioClient.GetObject(ctx, req.BucketName, req.ObjectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, handleMinIOError(err, "download_file", req.ObjectName)
	}
	return object, info, nil
}

// --- implMinIO: file info / delete / exists ---

func (m *implMinIO) GetFileInfo(ctx context.Context, bucketName, objectName string) (*FileInfo, error) {
	if err := validateBucketName(bucketName); err != nil {
		return nil, err
	}
	if err := validateObjectName(objectName); err != nil {
		return nil, err
	}
	objInfo, err := m.minioClient.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return nil, handleMinIOError(err, "get_file_info", objectName)
	}
	return &FileInfo{
		BucketName:   bucketName,
		ObjectName:   objectName,
		OriginalName: objInfo.UserMetadata[MetaOriginalName],
		Size:         objInfo.Size,
		ContentType:  objInfo.ContentType,
		ETag:         objInfo.ETag,
		LastModified: objInfo.LastModified,
		Metadata:     objInfo.UserMetadata,
	}, nil
}

// DeleteFile removes an object. Removing a missing object is not an error.
func (m *implMinIO) DeleteFile(ctx context.Context, bucketName, objectName string) error {
	if err := validateBucketName(bucketName); err != nil {
		return err
	}
	if err := validateObjectName(objectName); err != nil {
		return err
	}
	if err := m.minioClient.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return handleMinIOError(err, "delete_file", objectName)
	}
	return nil
}

func (m *implMinIO) FileExists(ctx context.Context, bucketName, objectName string) (bool, error) {
	_, err := m.GetFileInfo(ctx, bucketName, objectName)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// --- helpers ---

// handleMinIOError maps minio-go errors onto StorageError. err must be non-nil.
func handleMinIOError(err error, operation, name string) error {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		resp = minio.ToErrorResponse(err)
	}
	switch resp.Code {
	case "NoSuchBucket":
		se := NewBucketNotFoundError(name)
		se.Operation, se.Cause = operation, err
		return se
	case "NoSuchKey":
		se := NewObjectNotFoundError(name)
		se.Operation, se.Cause = operation, err
		return se
	case "AccessDenied":
		return &StorageError{Code: ErrCodePermission, Message: "access denied", Operation: operation, Cause: err}
	case "":
		se := NewConnectionError(err)
		se.Operation = operation
		return se
	default:
		return &StorageError{Code: ErrCodeConnection, Message: fmt.Sprintf("operation failed: %s", resp.Code), Operation: operation, Cause: err}
	}
}
