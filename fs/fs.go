// Package fs provides file-based storage for pipeline artifacts: the raw
// corpus left behind by the fetch layer, accepted article artifacts, and
// translated artifacts.
package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// Filename converts an artifact ID to a safe file name with the given
// extension. IDs come from the fetch layer as filename stems, but path
// separators are flattened so an ID can never escape its directory.
func Filename(id, ext string) string {
	id = strings.ReplaceAll(id, "/", "_")
	id = strings.ReplaceAll(id, string(os.PathSeparator), "_")
	return id + ext
}

// staging provides atomic publish semantics shared by artifact stores.
// Files are written to a temporary directory and moved into place in one
// rename on Commit, so readers never observe a half-written run.
type staging struct {
	baseDir string
	name    string
}

func (s *staging) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *staging) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *staging) write(filename, content string) error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), filename), []byte(content), 0644)
}

// Commit atomically replaces the published directory with the staged one.
func (s *staging) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		// Nothing staged; publishing an empty run is a no-op.
		return nil
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards staged files, leaving any published run untouched.
func (s *staging) Abort() error {
	return os.RemoveAll(s.tempDir())
}
