package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
)

const (
	// ContextUserKey holds the *Claims set by the auth middleware.
	ContextUserKey = "user"
)
