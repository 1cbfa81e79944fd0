package storage

import "io"

// BlobStore keeps raw uploaded files (bulk CSV sheets) for later audit.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
