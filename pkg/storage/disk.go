// Package storage is the durable-state abstraction behind the client's
// persisted cart and session stores.
//
// Two drivers are available:
//   - "local"  — files under the state root (default)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces),
//     for roaming the same state across machines
//
// Quick start:
//
//	storage.Connect()
//	storage.Put("cart", data)
//	data, _ := storage.Get("cart")
package storage

import "time"

// Disk is the driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Files lists the files directly inside directory.
	Files(directory string) ([]string, error)

	// DeleteDirectory removes directory and all its contents.
	DeleteDirectory(path string) error
}
