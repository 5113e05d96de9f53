package storage

import (
	"io"
	"time"
)

// Provider defines the behavior for any artwork storage backend. Each
// provider is bound to its own location (a directory, a bucket) at
// construction time.
type Provider interface {
	Get(key string) (*FileObject, error)
	Put(key string, body io.ReadSeeker, contentType string) error
	Delete(key string) error
	Exists(key string) (bool, error)
}

// FileObject is the provider-agnostic representation of a stored file.
type FileObject struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}
