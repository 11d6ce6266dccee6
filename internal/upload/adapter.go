package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"

	"fleet-admin-api-server/config"
	"fleet-admin-api-server/internal/storage"
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// RejectedError reports a file the adapter refused. Handlers translate it
// into a 400 with the reason, never a 500.
type RejectedError struct {
	Filename string
	Reason   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("file %q rejected: %s", e.Filename, e.Reason)
}

// Adapter validates and stores image attachments. The resource mapping is
// explicit configuration, not inferred from routing context.
type Adapter struct {
	store       storage.Storage
	resources   map[string]config.UploadResourceConfig
	maxFiles    int
	maxFileSize int64
}

func NewAdapter(store storage.Storage, cfg config.UploadsConfig) *Adapter {
	return &Adapter{
		store:       store,
		resources:   cfg.Resources,
		maxFiles:    cfg.MaxFiles,
		maxFileSize: cfg.MaxFileSizeMB << 20,
	}
}

// Limit is the per-record picture cap enforced at the upload boundary.
func (a *Adapter) Limit() int { return a.maxFiles }

// Save stores every attachment for the named resource collection and
// returns the stored references in request order. A rejection aborts the
// whole batch; files already written are removed best-effort.
func (a *Adapter) Save(ctx context.Context, resource string, files []*multipart.FileHeader) ([]string, error) {
	mapping, ok := a.resources[resource]
	if !ok {
		return nil, fmt.Errorf("no upload mapping configured for resource %q", resource)
	}
	if len(files) > a.maxFiles {
		return nil, &RejectedError{
			Reason: fmt.Sprintf("at most %d files per request, got %d", a.maxFiles, len(files)),
		}
	}

	var stored []string
	for _, fh := range files {
		ref, err := a.saveOne(ctx, mapping, fh)
		if err != nil {
			for _, s := range stored {
				if rmErr := a.store.Remove(ctx, s); rmErr != nil {
					logrus.WithError(rmErr).WithField("file", s).Warn("could not clean up staged upload")
				}
			}
			return nil, err
		}
		stored = append(stored, ref)
	}
	return stored, nil
}

func (a *Adapter) saveOne(ctx context.Context, mapping config.UploadResourceConfig, fh *multipart.FileHeader) (string, error) {
	if fh.Size > a.maxFileSize {
		return "", &RejectedError{
			Filename: fh.Filename,
			Reason:   fmt.Sprintf("exceeds the %d MB size limit", a.maxFileSize>>20),
		}
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open attachment %q: %w", fh.Filename, err)
	}
	defer f.Close()

	// Sniff the real content type; the client-declared header is not trusted.
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read attachment %q: %w", fh.Filename, err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", &RejectedError{
			Filename: fh.Filename,
			Reason:   fmt.Sprintf("content type %s is not allowed, only JPEG and PNG images are accepted", contentType),
		}
	}
	if orig := strings.ToLower(filepath.Ext(fh.Filename)); orig == ".jpeg" {
		ext = orig
	}

	name := fmt.Sprintf("%s-%d-%s%s", mapping.Prefix, time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	relPath := path.Join(mapping.Subfolder, name)

	body := io.MultiReader(bytes.NewReader(head), f)
	return a.store.Save(ctx, relPath, body, contentType)
}
