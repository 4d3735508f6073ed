package storage

import (
	"io"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(path string, file io.Reader) error

	// Delete removes a file at the given path.
	// Deleting a file that is already gone is not an error.
	Delete(path string) error

	// Exists reports whether a file is present at the given path
	Exists(path string) bool

	// URL returns the public URL for accessing the file
	URL(path string) string
}
