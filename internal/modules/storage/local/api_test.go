package local

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveFile_CreatesDirs(t *testing.T) {
	path := DayImagePath(filepath.Join(t.TempDir(), "Documents", "output"), "2023-03-14")
	require.True(t, strings.HasSuffix(path, filepath.Join("output", "getTodayImage_2023-03-14.png")))

	require.NoError(t, SaveFile(strings.NewReader("hello"), path))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	// overwrite truncates
	require.NoError(t, SaveFile(strings.NewReader("hi"), path))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hi", string(got))

	require.NoError(t, DeleteFile(path))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestSaveFile_ParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := SaveFile(strings.NewReader("hello"), DayImagePath(blocker, "2023-03-14"))
	require.Error(t, err)
}

func TestThumbnailPath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "getTodayImage_2023-03-14_thumb.png"),
		ThumbnailPath(filepath.Join("out", "getTodayImage_2023-03-14.png")))
}
