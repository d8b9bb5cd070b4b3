package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	text, err := Read(path)
	require.NoError(t, err)
	require.Empty(t, text)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, Write(path, "a rather long first version\n"))
	require.NoError(t, Write(path, "short"))

	text, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, "short", text)
}

func TestOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.txt")

	_, err := Read(path)
	require.ErrorIs(t, err, ErrOpen)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = Write(path, "x")
	require.ErrorIs(t, err, ErrOpen)
	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	require.Equal(t, path, openErr.Path)
}

func TestTargets(t *testing.T) {
	console := Console()
	require.True(t, console.IsConsole())
	require.Equal(t, "console", console.String())
	text, err := console.Load()
	require.NoError(t, err)
	require.Empty(t, text)
	require.NoError(t, console.Store("ignored"))

	path := filepath.Join(t.TempDir(), "doc.txt")
	target := Persisted(path)
	require.False(t, target.IsConsole())
	require.Equal(t, path, target.String())

	require.NoError(t, target.Store("hello\nworld"))
	text, err = target.Load()
	require.NoError(t, err)
	require.Equal(t, "hello\nworld", text)
}
