package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files. Save returns the reference recorded on
// the owning document (a relative path for disk, a URL for S3); Remove
// accepts that same reference back.
type Storage interface {
	Save(ctx context.Context, relPath string, r io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}
