package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactStore persists uploaded screenshots on disk, one file per client.
// A new upload for a client overwrites the previous one.
type ArtifactStore struct {
	dir string
}

func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Save writes the blob for a client, replacing any prior artifact. The write
// goes through a temp file so a concurrent Load never sees a partial image.
func (s *ArtifactStore) Save(clientID string, r io.Reader) error {
	path := s.path(clientID)
	tmp, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load returns the stored artifact for a client, or os.ErrNotExist.
func (s *ArtifactStore) Load(clientID string) ([]byte, error) {
	return os.ReadFile(s.path(clientID))
}

func (s *ArtifactStore) path(clientID string) string {
	return filepath.Join(s.dir, sanitize(clientID)+".png")
}

// sanitize strips path separators from a client id so a hostile id cannot
// escape the artifact directory.
func sanitize(id string) string {
	id = strings.ReplaceAll(id, "/", "_")
	id = strings.ReplaceAll(id, "\\", "_")
	id = strings.ReplaceAll(id, "..", "_")
	if id == "" {
		id = "unknown"
	}
	return id
}
