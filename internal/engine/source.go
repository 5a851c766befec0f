// ABOUTME: Candidate sources feeding the attack engine
// ABOUTME: Wordlist files, arbitrary readers such as stdin, and in-memory line slices

package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinPath is the wordlist path that selects standard input.
const StdinPath = "-"

// Source supplies candidate lines. Open is called once per attack and the
// returned reader is closed by the engine.
type Source interface {
	Open() (io.ReadCloser, error)
	Name() string
}

// FileSource reads candidates from a wordlist file.
type FileSource struct {
	Path string
}

// Open opens the wordlist. Directories are rejected.
func (s FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat wordlist: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("wordlist %s is a directory", s.Path)
	}

	return f, nil
}

// Name returns the wordlist path.
func (s FileSource) Name() string {
	return s.Path
}

// ReaderSource reads candidates from an existing reader. Closing the source
// does not close R.
type ReaderSource struct {
	R     io.Reader
	Label string
}

// Open wraps R.
func (s ReaderSource) Open() (io.ReadCloser, error) {
	if s.R == nil {
		return nil, errors.New("reader is nil")
	}
	return io.NopCloser(s.R), nil
}

// Name returns the label, or "reader".
func (s ReaderSource) Name() string {
	if s.Label == "" {
		return "reader"
	}
	return s.Label
}

// LineSource serves candidates from memory, one element per line.
type LineSource []string

// Open returns the lines joined with newlines.
func (s LineSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(strings.Join(s, "\n"))), nil
}

// Name returns "lines".
func (s LineSource) Name() string {
	return "lines"
}

// NewSource returns a FileSource for path, or a ReaderSource over stdin when
// path is StdinPath.
func NewSource(path string, stdin io.Reader) Source {
	if path == StdinPath {
		return ReaderSource{R: stdin, Label: "stdin"}
	}
	return FileSource{Path: path}
}
