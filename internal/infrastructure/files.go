// Package infrastructure provides the file system edges of a migration:
// opening sources, listing batch inputs and writing generated files.
//
// Import Path: purl-migrate.io/migrator/internal/infrastructure
package infrastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperrors "purl-migrate.io/migrator/internal/pkg/errors"
)

// StdStream names stdin or stdout in place of a path.
const StdStream = "-"

// dirPerm is the mode of output directories created on demand.
const dirPerm os.FileMode = 0o755

// FileStoreConfig configures a FileStore.
type FileStoreConfig struct {
	// Atomic writes go to a temp file in the destination directory and are
	// renamed into place, so a failed write never leaves a partial file.
	Atomic   bool
	FileMode os.FileMode
}

// FileStore reads sources and writes generated configurations.
type FileStore struct {
	atomic bool
	permF  os.FileMode
	stdin  io.Reader
	stdout io.Writer
}

// NewFileStore creates a FileStore bound to the process stdin/stdout.
func NewFileStore(cfg FileStoreConfig) *FileStore {
	pf := cfg.FileMode
	if pf == 0 {
		pf = 0o644
	}
	return &FileStore{atomic: cfg.Atomic, permF: pf, stdin: os.Stdin, stdout: os.Stdout}
}

// WithStdio replaces the streams used for "-" and empty paths.
func (s *FileStore) WithStdio(in io.Reader, out io.Writer) *FileStore {
	s.stdin = in
	s.stdout = out
	return s
}

// Open opens path for reading. An empty path or "-" reads stdin.
func (s *FileStore) Open(path string) (io.ReadCloser, error) {
	if path == "" || path == StdStream {
		return io.NopCloser(bufio.NewReader(s.stdin)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSourceUnreadable, fmt.Sprintf("open %s", path))
	}
	return f, nil
}

// ListSources returns the *.xml files directly inside dir, sorted by name.
func (s *FileStore) ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSourceUnreadable, fmt.Sprintf("read directory %s", dir))
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

// Write stores data at path, creating missing parent directories.
// An empty path or "-" writes to stdout.
func (s *FileStore) Write(path string, data []byte) error {
	if path == "" || path == StdStream {
		if _, err := s.stdout.Write(data); err != nil {
			return apperrors.Wrap(err, apperrors.CodeSinkWriteFailed, "write stdout")
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return apperrors.Wrap(err, apperrors.CodeSinkWriteFailed, fmt.Sprintf("create directory for %s", path))
	}

	var err error
	if s.atomic {
		err = s.writeAtomic(path, data)
	} else {
		err = os.WriteFile(path, data, s.permF)
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeSinkWriteFailed, fmt.Sprintf("write %s", path))
	}
	return nil
}

func (s *FileStore) writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(s.permF); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
