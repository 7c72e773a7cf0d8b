package minio

import (
	"errors"
	"fmt"
)

// StorageError is the error type returned by every MinIO operation.
type StorageError struct {
	Code      string
	Message   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("minio %s: %s: %s", e.Operation, e.Code, e.Message)
	}
	return fmt.Sprintf("minio: %s: %s", e.Code, e.Message)
}

func (e *StorageError) Unwrap() error { return e.Cause }

func NewInvalidInputError(msg string) *StorageError {
	return &StorageError{Code: ErrCodeInvalidInput, Message: msg}
}

func NewConnectionError(cause error) *StorageError {
	return &StorageError{Code: ErrCodeConnection, Message: "connection failed", Cause: cause}
}

func NewBucketNotFoundError(bucket string) *StorageError {
	return &StorageError{Code: ErrCodeBucketNotFound, Message: fmt.Sprintf("bucket not found: %s", bucket)}
}

func NewObjectNotFoundError(object string) *StorageError {
	return &StorageError{Code: ErrCodeObjectNotFound, Message: fmt.Sprintf("object not found: %s", object)}
}

// IsNotFound reports whether err is a missing bucket or object.
func IsNotFound(err error) bool {
	var se *StorageError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == ErrCodeObjectNotFound || se.Code == ErrCodeBucketNotFound
}
