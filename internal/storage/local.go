package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// ProfileArea holds profile images, served under /images
	ProfileArea = "profile"
	// AttachmentArea holds hoax attachments, served under /attachments
	AttachmentArea = "attachment"
)

// urlPrefixes maps storage areas to their public URL prefixes
var urlPrefixes = map[string]string{
	ProfileArea:    "/images",
	AttachmentArea: "/attachments",
}

// LocalStorage stores files on the local filesystem under a root
// directory with one subdirectory per area. The database remains
// authoritative; files here are best-effort side state.
type LocalStorage struct {
	root string
}

// NewLocal creates the upload directory tree and returns a local storage.
func NewLocal(root string, areas ...string) (*LocalStorage, error) {
	for _, area := range areas {
		err := os.MkdirAll(filepath.Join(root, area), 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	return &LocalStorage{root: root}, nil
}

// Root returns the base directory of the storage area.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) Save(path string, file io.Reader) error {
	dst, err := os.Create(filepath.Join(s.root, path))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Delete(path string) error {
	err := os.Remove(filepath.Join(s.root, path))
	if errors.Is(err, fs.ErrNotExist) {
		// A prior partial failure may have removed the file already
		return nil
	}
	return err
}

func (s *LocalStorage) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.root, path))
	return err == nil
}

func (s *LocalStorage) URL(path string) string {
	area := filepath.Dir(path)
	prefix, ok := urlPrefixes[area]
	if !ok {
		return "/" + path
	}
	return prefix + "/" + filepath.Base(path)
}
