package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Disk stores files under a local uploads root. Records carry paths
// relative to that root so the root can move between environments.
type Disk struct {
	Root string
}

func NewDisk(root string) *Disk {
	return &Disk{Root: root}
}

func (d *Disk) Save(_ context.Context, relPath string, r io.Reader, _ string) (string, error) {
	full := filepath.Join(d.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return relPath, nil
}

func (d *Disk) Remove(_ context.Context, ref string) error {
	return os.Remove(filepath.Join(d.Root, filepath.FromSlash(ref)))
}
