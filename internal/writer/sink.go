package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidFileName is returned for names that would escape the output directory.
var ErrInvalidFileName = errors.New("invalid output file name")

// Sink stores output documents by file name.
type Sink interface {
	WriteFile(name string, data []byte) error
	Clean() error
}

// Ensure DirSink implements Sink.
var _ Sink = (*DirSink)(nil)

// DirSink writes documents into a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates the directory if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	return &DirSink{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// WriteFile writes data to dir/name, replacing any existing file.
func (s *DirSink) WriteFile(name string, data []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Clean removes every .json file in the directory. Other files are kept.
func (s *DirSink) Clean() error {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to list output directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
	}

	return nil
}

// MemorySink keeps documents in memory.
type MemorySink struct {
	Files map[string][]byte
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{Files: make(map[string][]byte)}
}

// WriteFile stores a copy of data.
func (s *MemorySink) WriteFile(name string, data []byte) error {
	s.Files[name] = append([]byte(nil), data...)
	return nil
}

// Clean drops every stored document.
func (s *MemorySink) Clean() error {
	clear(s.Files)
	return nil
}

// Names returns stored file names sorted.
func (s *MemorySink) Names() []string {
	names := make([]string, 0, len(s.Files))
	for name := range s.Files {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
