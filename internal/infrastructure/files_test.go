package infrastructure

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

func TestFileStore_WriteCreatesParents(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		dir := t.TempDir()
		dest := filepath.Join(dir, "nested", "deeper", "foo.yml")

		store := NewFileStore(FileStoreConfig{Atomic: atomic, FileMode: 0o600})
		require.NoError(t, store.Write(dest, []byte("idspace: FOO\n")))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		require.Equal(t, "idspace: FOO\n", string(got))

		info, err := os.Stat(dest)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStore_AtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "foo.yml")
	store := NewFileStore(FileStoreConfig{Atomic: true})

	require.NoError(t, store.Write(dest, []byte("first")))
	require.NoError(t, store.Write(dest, []byte("second")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "foo.yml", entries[0].Name())

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "second", string(got))
}

func TestFileStore_Stdio(t *testing.T) {
	var out bytes.Buffer
	store := NewFileStore(FileStoreConfig{}).WithStdio(strings.NewReader("<purls/>"), &out)

	rc, err := store.Open(StdStream)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "<purls/>", string(data))

	require.NoError(t, store.Write("", []byte("yaml")))
	require.Equal(t, "yaml", out.String())
}

func TestFileStore_OpenMissing(t *testing.T) {
	_, err := NewFileStore(FileStoreConfig{}).Open(filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeSourceUnreadable, appErr.Code)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileStore_ListSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"obi.xml", "GO.XML", "notes.txt", "bfo.xml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o755))

	got, err := NewFileStore(FileStoreConfig{}).ListSources(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "GO.XML"),
		filepath.Join(dir, "bfo.xml"),
		filepath.Join(dir, "obi.xml"),
	}, got)
}
