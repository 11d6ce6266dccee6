package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskSaveCreatesMissingDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	d := NewDisk(root)

	ref, err := d.Save(context.Background(), "vehicles/vehicle-1.jpg", strings.NewReader("payload"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "vehicles/vehicle-1.jpg", ref)

	data, err := os.ReadFile(filepath.Join(root, "vehicles", "vehicle-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDiskSaveReturnsRelativeReference(t *testing.T) {
	d := NewDisk(t.TempDir())

	ref, err := d.Save(context.Background(), "employees/photo.png", strings.NewReader("x"), "image/png")
	require.NoError(t, err)
	assert.False(t, filepath.IsAbs(ref))
	assert.Equal(t, "employees/photo.png", ref)
}

func TestDiskRemoveDeletesOnlyAddressedFile(t *testing.T) {
	root := t.TempDir()
	d := NewDisk(root)

	_, err := d.Save(context.Background(), "vehicles/keep.jpg", strings.NewReader("a"), "image/jpeg")
	require.NoError(t, err)
	_, err = d.Save(context.Background(), "vehicles/drop.jpg", strings.NewReader("b"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, d.Remove(context.Background(), "vehicles/drop.jpg"))

	_, err = os.Stat(filepath.Join(root, "vehicles", "drop.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "vehicles", "keep.jpg"))
	assert.NoError(t, err)
}

func TestDiskRemoveMissingFile(t *testing.T) {
	d := NewDisk(t.TempDir())
	err := d.Remove(context.Background(), "vehicles/never-written.jpg")
	assert.Error(t, err)
}
