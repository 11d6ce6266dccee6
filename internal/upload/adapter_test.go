package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-admin-api-server/config"
)

var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}
	gifBytes  = []byte("GIF89a\x00\x00\x00\x00")
)

type memStore struct {
	saved   map[string][]byte
	removed []string
}

func newMemStore() *memStore {
	return &memStore{saved: map[string][]byte{}}
}

func (m *memStore) Save(_ context.Context, relPath string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[relPath] = data
	return relPath, nil
}

func (m *memStore) Remove(_ context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	delete(m.saved, ref)
	return nil
}

type attachment struct {
	name string
	data []byte
}

func fileHeaders(t *testing.T, attachments []attachment) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, a := range attachments {
		fw, err := w.CreateFormFile("pictures", a.name)
		require.NoError(t, err)
		_, err = fw.Write(a.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["pictures"]
}

func newTestAdapter(store *memStore) *Adapter {
	return NewAdapter(store, config.UploadsConfig{
		MaxFiles:      5,
		MaxFileSizeMB: 1,
		Resources: map[string]config.UploadResourceConfig{
			"vehicles": {Subfolder: "vehicles", Prefix: "vehicle"},
		},
	})
}

func TestSaveAcceptsJPEGAndPNG(t *testing.T) {
	store := newMemStore()
	a := newTestAdapter(store)

	refs, err := a.Save(context.Background(), "vehicles", fileHeaders(t, []attachment{
		{"front.jpg", jpegBytes},
		{"side.png", pngBytes},
	}))
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "vehicles", path.Dir(refs[0]))
	assert.True(t, strings.HasPrefix(path.Base(refs[0]), "vehicle-"))
	assert.Equal(t, ".jpg", path.Ext(refs[0]))
	assert.Equal(t, ".png", path.Ext(refs[1]))
	assert.NotEqual(t, refs[0], refs[1])

	assert.Equal(t, jpegBytes, store.saved[refs[0]])
	assert.Equal(t, pngBytes, store.saved[refs[1]])
}

func TestSaveSniffsContentTypeNotFilename(t *testing.T) {
	store := newMemStore()
	a := newTestAdapter(store)

	// A GIF does not become acceptable by renaming it.
	_, err := a.Save(context.Background(), "vehicles", fileHeaders(t, []attachment{
		{"innocent.jpg", gifBytes},
	}))
	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Contains(t, rejected.Reason, "image/gif")
	assert.Empty(t, store.saved)
}

func TestSaveRejectionCleansUpBatch(t *testing.T) {
	store := newMemStore()
	a := newTestAdapter(store)

	_, err := a.Save(context.Background(), "vehicles", fileHeaders(t, []attachment{
		{"ok.png", pngBytes},
		{"bad.gif", gifBytes},
	}))
	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))

	// The PNG written before the rejection was removed again.
	assert.Empty(t, store.saved)
	assert.Len(t, store.removed, 1)
}

func TestSaveRejectsTooManyFiles(t *testing.T) {
	store := newMemStore()
	a := newTestAdapter(store)

	attachments := make([]attachment, 6)
	for i := range attachments {
		attachments[i] = attachment{"p.png", pngBytes}
	}
	_, err := a.Save(context.Background(), "vehicles", fileHeaders(t, attachments))
	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Contains(t, rejected.Reason, "at most 5")
	assert.Empty(t, store.saved)
}

func TestSaveRejectsOversizeFile(t *testing.T) {
	store := newMemStore()
	a := newTestAdapter(store)

	big := append(append([]byte{}, jpegBytes...), make([]byte, 1<<20)...)
	_, err := a.Save(context.Background(), "vehicles", fileHeaders(t, []attachment{
		{"huge.jpg", big},
	}))
	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Contains(t, rejected.Reason, "size limit")
}

func TestSaveUnknownResource(t *testing.T) {
	a := newTestAdapter(newMemStore())

	_, err := a.Save(context.Background(), "gadgets", fileHeaders(t, []attachment{
		{"p.png", pngBytes},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gadgets")
}

func TestSaveKeepsJpegExtension(t *testing.T) {
	store := newMemStore()
	a := newTestAdapter(store)

	refs, err := a.Save(context.Background(), "vehicles", fileHeaders(t, []attachment{
		{"photo.JPEG", jpegBytes},
	}))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, ".jpeg", path.Ext(refs[0]))
}

func TestLimitReflectsConfig(t *testing.T) {
	a := newTestAdapter(newMemStore())
	assert.Equal(t, 5, a.Limit())
}
