package minio

import "time"

const (
	// HTTP transport for MinIO client
	maxIdleConns        = 100
	maxIdleConnsPerHost = 100
	idleConnTimeout     = 90 * time.Second
	disableCompression  = true
	disableKeepAlives   = false
)

const (
	// MaxFileSizeBytes is the maximum upload file size (5GB).
	MaxFileSizeBytes = 5 * 1024 * 1024 * 1024
	// DefaultEndpointPort is appended to endpoint if no port.
	DefaultEndpointPort = ":9000"
	// MetaOriginalName is the user metadata key holding the client-facing filename.
	MetaOriginalName = "original-name"
)

// Storage error codes.
const (
	ErrCodeConnection     = "CONNECTION_ERROR"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeBucketNotFound = "BUCKET_NOT_FOUND"
	ErrCodeObjectNotFound = "OBJECT_NOT_FOUND"
	ErrCodePermission     = "PERMISSION_DENIED"
)
